// seehuhn.de/go/sfnt - a library for reading and writing font files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package coverage reads OpenType "Coverage Tables".
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
package coverage

import (
	"fmt"
	"sort"

	"github.com/textlayout/gsub/bloom"
	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf"
)

// Table maps covered glyph IDs to their coverage index. The mapping from
// glyph ID to coverage index is strictly monotonic in glyph ID.
type Table map[glyph.ID]int

// Index returns the coverage index of gid, and whether gid is covered.
func (t Table) Index(gid glyph.ID) (int, bool) {
	idx, ok := t[gid]
	return idx, ok
}

// Contains reports whether gid is covered.
func (t Table) Contains(gid glyph.ID) bool {
	_, ok := t[gid]
	return ok
}

// Glyphs returns the covered glyphs in increasing order.
func (t Table) Glyphs() []glyph.ID {
	out := make([]glyph.ID, 0, len(t))
	for g := range t {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bloom computes the Bloom digest of the covered glyph set. This is used
// by the engine to build the per-sub-table "start Bloom" (spec
// §4.5/Bloom computation): types 1, 2, 4 and 8 all gate on coverage of
// the anchor position.
func (t Table) Bloom() bloom.Digest {
	var d bloom.Digest
	for g := range t {
		d = d.Add(uint16(g))
		if d.IsUniversal() {
			break
		}
	}
	return d
}

// Read decodes a Coverage table (format 1 or 2) from v at the given
// offset relative to base.
func Read(v otf.View, base, offset int) (Table, error) {
	format, err := v.U16At(base, offset)
	if err != nil {
		return nil, err
	}

	t := make(Table)
	switch format {
	case 1:
		glyphs, err := v.U16SliceAt(base, offset+2)
		if err != nil {
			return nil, err
		}
		prev := -1
		for i, gid := range glyphs {
			if int(gid) <= prev {
				return nil, &otf.MalformedTableError{
					SubSystem: "coverage",
					Reason:    "glyph IDs not strictly increasing (format 1)",
				}
			}
			t[glyph.ID(gid)] = i
			prev = int(gid)
		}

	case 2:
		rangeCount, err := v.U16At(base, offset+2)
		if err != nil {
			return nil, err
		}
		pos := offset + 4
		wantIndex := 0
		prevEnd := -1
		for i := 0; i < int(rangeCount); i++ {
			startGID, err := v.U16At(base, pos)
			if err != nil {
				return nil, err
			}
			endGID, err := v.U16At(base, pos+2)
			if err != nil {
				return nil, err
			}
			startIndex, err := v.U16At(base, pos+4)
			if err != nil {
				return nil, err
			}
			pos += 6
			if int(startGID) > int(endGID) || int(startGID) <= prevEnd || int(startIndex) != wantIndex {
				return nil, &otf.MalformedTableError{
					SubSystem: "coverage",
					Reason:    "invalid range record (format 2)",
				}
			}
			for g := int(startGID); g <= int(endGID); g++ {
				t[glyph.ID(g)] = wantIndex
				wantIndex++
			}
			prevEnd = int(endGID)
		}

	default:
		return nil, &otf.MalformedTableError{
			SubSystem: "coverage",
			Reason:    fmt.Sprintf("unknown coverage format %d", format),
		}
	}

	return t, nil
}
