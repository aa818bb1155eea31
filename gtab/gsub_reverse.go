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

// Gsub8_1 is a Reverse Chaining Contextual Single Substitution subtable
// (type 8, format 1): like Gsub1_2, but gated on surrounding backtrack
// and lookahead coverage, and walked back-to-front by the engine so
// that earlier substitutions in the same lookup never shift the
// positions a later one inspects.
//
// The substitute glyph is the input coverage index looked up directly
// in SubstituteGlyphIDs: this is the one point the distilled spec
// flagged as ambiguous in the retrieved revision of the original
// implementation; it is resolved here per the OpenType specification
// text (see DESIGN.md).
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#81-reverse-chaining-contextual-single-substitution-format-1-coverage-based-glyph-contexts
type Gsub8_1 struct {
	Input              coverage.Table
	Backtrack          []coverage.Table // nearest-first: Backtrack[0] is the glyph immediately before the input glyph
	Lookahead          []coverage.Table // nearest-first: Lookahead[0] is the glyph immediately after
	SubstituteGlyphIDs []glyph.ID       // indexed by input coverage index
}

func readGsub8_1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	backtrackOffsets, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	lookaheadOffsetsBase := 6 + 2*len(backtrackOffsets)
	lookaheadOffsets, err := v.U16SliceAt(subtablePos, lookaheadOffsetsBase)
	if err != nil {
		return nil, err
	}
	substitutesBase := lookaheadOffsetsBase + 2 + 2*len(lookaheadOffsets)
	rawSub, err := v.U16SliceAt(subtablePos, substitutesBase)
	if err != nil {
		return nil, err
	}

	input, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}
	backtrack := make([]coverage.Table, len(backtrackOffsets))
	for i, offs := range backtrackOffsets {
		backtrack[i], err = coverage.Read(v, subtablePos, int(offs))
		if err != nil {
			return nil, err
		}
	}
	lookahead := make([]coverage.Table, len(lookaheadOffsets))
	for i, offs := range lookaheadOffsets {
		lookahead[i], err = coverage.Read(v, subtablePos, int(offs))
		if err != nil {
			return nil, err
		}
	}

	return &Gsub8_1{
		Input:              input,
		Backtrack:          backtrack,
		Lookahead:          lookahead,
		SubstituteGlyphIDs: toGIDs(rawSub),
	}, nil
}

func (l *Gsub8_1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	idx, ok := l.Input.Index(gid)
	if !ok || idx >= len(l.SubstituteGlyphIDs) {
		return 0, nil, false
	}

	p := cursor
	for _, cov := range l.Backtrack {
		p--
		if p < 0 || !cov.Contains(seq.At(p)) {
			return 0, nil, false
		}
	}

	p = cursor
	for _, cov := range l.Lookahead {
		p++
		if p >= seq.Len() || !cov.Contains(seq.At(p)) {
			return 0, nil, false
		}
	}

	seq.ReplaceAt(cursor, l.SubstituteGlyphIDs[idx])
	return cursor, nil, true
}

func (l *Gsub8_1) startBloom() bloom.Digest {
	return l.Input.Bloom()
}
