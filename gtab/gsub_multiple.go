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

package gtab

import (
	"github.com/textlayout/gsub/bloom"
	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf"
	"github.com/textlayout/gsub/otf/coverage"
)

// Gsub2_1 is a Multiple Substitution subtable (type 2, format 1): each
// covered glyph is replaced by a sequence of replacement glyphs, indexed
// by coverage index; an empty sequence deletes the glyph.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#21-multiple-substitution-format-1
type Gsub2_1 struct {
	Cov  coverage.Table
	Repl [][]glyph.ID // indexed by coverage index
}

func readGsub2_1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	sequenceOffsets, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}

	repl := make([][]glyph.ID, len(sequenceOffsets))
	for i, offs := range sequenceOffsets {
		seqPos := subtablePos + int(offs)
		raw, err := v.U16SliceAt(seqPos, 0)
		if err != nil {
			return nil, err
		}
		repl[i] = toGIDs(raw)
	}

	return &Gsub2_1{Cov: cov, Repl: repl}, nil
}

func (l *Gsub2_1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	idx, ok := l.Cov.Index(gid)
	if !ok || idx >= len(l.Repl) {
		return 0, nil, false
	}
	// An empty substitute sequence is a valid, if unusual, encoding of
	// glyph deletion: the coverage matched, so the substitution applies,
	// it just consumes the glyph without replacing it with anything.
	repl := l.Repl[idx]
	seq.ReplaceRange(cursor, cursor+1, repl)
	return cursor + len(repl), nil, true
}

func (l *Gsub2_1) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}
