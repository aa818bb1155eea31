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
	"testing"

	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf/coverage"
)

func TestGsub8_1Apply(t *testing.T) {
	l := &Gsub8_1{
		Input:              coverage.Table{5: 0},
		Backtrack:          []coverage.Table{{1: 0}}, // glyph immediately before must be 1
		Lookahead:          []coverage.Table{{2: 0}}, // glyph immediately after must be 2
		SubstituteGlyphIDs: []glyph.ID{99},
	}

	seq := glyph.New([]glyph.ID{1, 5, 2})
	next, res, ok := l.apply(seq, 1, seq.Len())
	if !ok || res != nil || next != 1 {
		t.Fatalf("apply = %d, %v, %v", next, res, ok)
	}
	if got := seq.At(1); got != 99 {
		t.Errorf("seq[1] = %d, want 99", got)
	}
}

func TestGsub8_1BacktrackMismatch(t *testing.T) {
	l := &Gsub8_1{
		Input:              coverage.Table{5: 0},
		Backtrack:          []coverage.Table{{1: 0}},
		SubstituteGlyphIDs: []glyph.ID{99},
	}
	seq := glyph.New([]glyph.ID{9, 5})
	if _, _, ok := l.apply(seq, 1, seq.Len()); ok {
		t.Error("apply matched despite a backtrack mismatch")
	}
}

func TestGsub8_1AtSequenceStart(t *testing.T) {
	l := &Gsub8_1{
		Input:              coverage.Table{5: 0},
		Backtrack:          []coverage.Table{{1: 0}},
		SubstituteGlyphIDs: []glyph.ID{99},
	}
	seq := glyph.New([]glyph.ID{5})
	if _, _, ok := l.apply(seq, 0, seq.Len()); ok {
		t.Error("apply matched with no room for the required backtrack glyph")
	}
}
