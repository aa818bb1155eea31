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
	"github.com/textlayout/gsub/otf/classdef"
	"github.com/textlayout/gsub/otf/coverage"
)

func TestSeqContext1Apply(t *testing.T) {
	l := &SeqContext1{
		Cov: coverage.Table{2: 0, 3: 1},
		Rules: [][]*SeqRule{
			{ // anchor == 2
				{Input: []glyph.ID{3, 4, 6}},
				{Input: []glyph.ID{3, 4}},
			},
			{ // anchor == 3
				{Input: []glyph.ID{4, 5, 6}},
			},
		},
	}

	seq := glyph.New([]glyph.ID{2, 3, 4, 5})
	next, res, ok := l.apply(seq, 0, seq.Len())
	if !ok {
		t.Fatal("apply did not match")
	}
	if next != 3 {
		t.Errorf("next = %d, want 3", next)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, res.inputPos); diff != "" {
		t.Error(diff)
	}
}

func TestSeqContext2Apply(t *testing.T) {
	l := &SeqContext2{
		Cov:     coverage.Table{2: 0},
		Classes: classdef.Table{2: 1, 3: 2, 4: 2},
		Rules: [][]*ClassSequenceRule{
			nil,
			{{Input: []uint16{2}}}, // class 1
			{{Input: []uint16{2, 2}}},
		},
	}

	seq := glyph.New([]glyph.ID{2, 3, 4})
	next, res, ok := l.apply(seq, 0, seq.Len())
	if !ok || next != 2 {
		t.Fatalf("apply = %d, %v, %v", next, res, ok)
	}
}

func TestSeqContext3Apply(t *testing.T) {
	l := &SeqContext3{
		Cov: []coverage.Table{{2: 0}, {3: 0}, {4: 0}},
	}
	seq := glyph.New([]glyph.ID{2, 3, 4, 5})

	next, res, ok := l.apply(seq, 0, seq.Len())
	if !ok || next != 3 {
		t.Fatalf("apply = %d, %v, %v", next, res, ok)
	}

	seq2 := glyph.New([]glyph.ID{2, 3, 99})
	if _, _, ok := l.apply(seq2, 0, seq2.Len()); ok {
		t.Error("apply matched despite a coverage mismatch")
	}
}
