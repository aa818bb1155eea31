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

// Gsub3_1 is an Alternate Substitution subtable (type 3, format 1):
// each covered glyph offers a set of visually-equivalent alternates
// (e.g. stylistic variants) for an external agent to pick from.
// Picking an alternate is a higher-level editing decision this engine
// does not make on its own, so apply never fires for this type -- it
// is decoded for introspection only.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#31-alternate-substitution-format-1
type Gsub3_1 struct {
	Cov        coverage.Table
	Alternates [][]glyph.ID // indexed by coverage index
}

func readGsub3_1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	alternateSetOffsets, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}

	alt := make([][]glyph.ID, len(alternateSetOffsets))
	for i, offs := range alternateSetOffsets {
		setPos := subtablePos + int(offs)
		raw, err := v.U16SliceAt(setPos, 0)
		if err != nil {
			return nil, err
		}
		alt[i] = toGIDs(raw)
	}

	return &Gsub3_1{Cov: cov, Alternates: alt}, nil
}

func (l *Gsub3_1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	return 0, nil, false
}

// startBloom returns the Null digest: since apply never fires, this
// subtable can never match, and the engine can skip it for free.
func (l *Gsub3_1) startBloom() bloom.Digest {
	return bloom.Null
}
