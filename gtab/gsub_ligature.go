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

// Ligature is a single entry of a Gsub4_1 ligature set: a run of input
// glyphs (excluding the first, which is in Cov) collapsing to Out.
type Ligature struct {
	In  []glyph.ID
	Out glyph.ID
}

// Gsub4_1 is a Ligature Substitution subtable (type 4, format 1): a
// sequence of glyphs is replaced by a single glyph. Within a ligature
// set, entries are tried in wire order, so a font that wants "ffl" to
// win over "ff" must list "ffl" first.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#41-ligature-substitution-format-1
type Gsub4_1 struct {
	Cov  coverage.Table
	Repl [][]Ligature // indexed by coverage index
}

func readGsub4_1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	ligatureSetOffsets, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}

	repl := make([][]Ligature, len(ligatureSetOffsets))
	for i, setOffs := range ligatureSetOffsets {
		ligSetPos := subtablePos + int(setOffs)
		ligatureOffsets, err := v.U16SliceAt(ligSetPos, 0)
		if err != nil {
			return nil, err
		}

		repl[i] = make([]Ligature, len(ligatureOffsets))
		for j, ligOffs := range ligatureOffsets {
			ligPos := ligSetPos + int(ligOffs)
			ligatureGlyph, err := v.U16At(ligPos, 0)
			if err != nil {
				return nil, err
			}
			componentCount, err := v.U16At(ligPos, 2)
			if err != nil {
				return nil, err
			}
			if componentCount == 0 {
				return nil, malformed("ligature with zero components")
			}
			raw, err := v.U16Array(ligPos, 4, int(componentCount)-1)
			if err != nil {
				return nil, err
			}
			repl[i][j] = Ligature{In: toGIDs(raw), Out: glyph.ID(ligatureGlyph)}
		}
	}

	return &Gsub4_1{Cov: cov, Repl: repl}, nil
}

func (l *Gsub4_1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	ligSetIdx, ok := l.Cov.Index(gid)
	if !ok || ligSetIdx >= len(l.Repl) {
		return 0, nil, false
	}

ligLoop:
	for _, lig := range l.Repl[ligSetIdx] {
		p := cursor + 1
		for _, want := range lig.In {
			if p >= limit || seq.At(p) != want {
				continue ligLoop
			}
			p++
		}
		seq.ReplaceRange(cursor, p, []glyph.ID{lig.Out})
		return cursor + 1, nil, true
	}
	return 0, nil, false
}

func (l *Gsub4_1) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}
