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

// Gsub1_1 is a Single Substitution subtable (type 1, format 1): every
// covered glyph is replaced by gid+Delta, taken mod 65536.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#11-single-substitution-format-1
type Gsub1_1 struct {
	Cov   coverage.Table
	Delta glyph.ID
}

func readGsub1_1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	deltaGlyphID, err := v.U16At(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}
	return &Gsub1_1{Cov: cov, Delta: glyph.ID(deltaGlyphID)}, nil
}

func (l *Gsub1_1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	if !l.Cov.Contains(gid) {
		return 0, nil, false
	}
	seq.ReplaceAt(cursor, gid+l.Delta)
	return cursor + 1, nil, true
}

func (l *Gsub1_1) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}

// Gsub1_2 is a Single Substitution subtable (type 1, format 2): every
// covered glyph is replaced by the entry in SubstituteGlyphIDs at its
// coverage index.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#12-single-substitution-format-2
type Gsub1_2 struct {
	Cov                coverage.Table
	SubstituteGlyphIDs []glyph.ID
}

func readGsub1_2(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	raw, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}
	subs := toGIDs(raw)
	return &Gsub1_2{Cov: cov, SubstituteGlyphIDs: subs}, nil
}

func (l *Gsub1_2) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	idx, ok := l.Cov.Index(gid)
	if !ok || idx >= len(l.SubstituteGlyphIDs) {
		return 0, nil, false
	}
	seq.ReplaceAt(cursor, l.SubstituteGlyphIDs[idx])
	return cursor + 1, nil, true
}

func (l *Gsub1_2) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}

func toGIDs(raw []uint16) []glyph.ID {
	out := make([]glyph.ID, len(raw))
	for i, g := range raw {
		out[i] = glyph.ID(g)
	}
	return out
}
