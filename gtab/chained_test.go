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

	"github.com/google/go-cmp/cmp"
	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf/coverage"
)

func TestChainedSeqContext1Apply(t *testing.T) {
	l := &ChainedSeqContext1{
		Cov: coverage.Table{3: 0},
		Rules: [][]*ChainedSeqRule{
			{
				{
					Backtrack: []glyph.ID{2, 1}, // nearest-first: seq[cursor-1]==2, seq[cursor-2]==1
					Input:     []glyph.ID{4},
					Lookahead: []glyph.ID{5},
				},
			},
		},
	}

	seq := glyph.New([]glyph.ID{1, 2, 3, 4, 5})
	next, res, ok := l.apply(seq, 2, seq.Len())
	if !ok {
		t.Fatal("apply did not match")
	}
	if next != 4 {
		t.Errorf("next = %d, want 4", next)
	}
	if diff := cmp.Diff([]int{2, 3}, res.inputPos); diff != "" {
		t.Error(diff)
	}
}

func TestChainedSeqContext1BacktrackOutOfRange(t *testing.T) {
	l := &ChainedSeqContext1{
		Cov: coverage.Table{3: 0},
		Rules: [][]*ChainedSeqRule{
			{{Backtrack: []glyph.ID{1, 1}, Input: []glyph.ID{}}},
		},
	}
	seq := glyph.New([]glyph.ID{1, 3})
	if _, _, ok := l.apply(seq, 1, seq.Len()); ok {
		t.Error("apply matched despite insufficient backtrack glyphs")
	}
}

func TestChainedSeqContext3Apply(t *testing.T) {
	l := &ChainedSeqContext3{
		Backtrack: []coverage.Table{{1: 0}},
		Input:     []coverage.Table{{3: 0}, {4: 0}},
		Lookahead: []coverage.Table{{5: 0}},
	}
	seq := glyph.New([]glyph.ID{1, 3, 4, 5})

	next, res, ok := l.apply(seq, 1, seq.Len())
	if !ok || next != 3 {
		t.Fatalf("apply = %d, %v, %v", next, res, ok)
	}

	seq2 := glyph.New([]glyph.ID{9, 3, 4, 5})
	if _, _, ok := l.apply(seq2, 1, seq2.Len()); ok {
		t.Error("apply matched despite a backtrack mismatch")
	}
}
