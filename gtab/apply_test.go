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
	"github.com/textlayout/gsub/bloom"
	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf/coverage"
)

func chainFor(t *testing.T, lookups ...*LookupTable) *Chain {
	t.Helper()
	table := &Table{LookupList: LookupList(lookups)}
	order := make([]LookupIndex, len(lookups))
	for i := range lookups {
		order[i] = LookupIndex(i)
	}
	c := &Chain{
		table:           table,
		order:           order,
		lookups:         lookups,
		subtableBloom:   newAddrTable[bloom.Digest](),
		lookupBloom:     newAddrTable[lookupBloomEntry](),
		sink:            newWarnOnce(nil),
		maxNestingDepth: defaultMaxNestingDepth,
	}
	c.precomputeBlooms()
	return c
}

func TestChainApplyForwardWalk(t *testing.T) {
	single := &Gsub1_1{Cov: coverage.Table{10: 0}, Delta: 5}
	c := chainFor(t, &LookupTable{Type: LookupSingle, Subtables: []Subtable{single}})

	seq := glyph.New([]glyph.ID{10, 20, 10})
	c.Apply(seq)

	if diff := cmp.Diff([]glyph.ID{15, 20, 15}, seq.IDs()); diff != "" {
		t.Error(diff)
	}
}

func TestChainApplyReverseWalk(t *testing.T) {
	rev := &Gsub8_1{
		Input:              coverage.Table{5: 0},
		SubstituteGlyphIDs: []glyph.ID{99},
	}
	c := chainFor(t, &LookupTable{Type: LookupReverseChainSingle, Subtables: []Subtable{rev}})

	seq := glyph.New([]glyph.ID{5, 5, 5})
	c.Apply(seq)

	if diff := cmp.Diff([]glyph.ID{99, 99, 99}, seq.IDs()); diff != "" {
		t.Error(diff)
	}
}

func TestChainApplyNestedContextLookup(t *testing.T) {
	// Lookup 0 is a context lookup: matching glyph 1 followed by glyph 2
	// triggers a nested call into lookup 1 at the matched anchor position.
	nested := &Gsub1_1{Cov: coverage.Table{1: 0}, Delta: 100}
	ctx := &SeqContext1{
		Cov: coverage.Table{1: 0},
		Rules: [][]*SeqRule{
			{{Input: []glyph.ID{2}, Actions: []seqLookupRecord{{SequenceIndex: 0, LookupListIndex: 1}}}},
		},
	}

	c := chainFor(t,
		&LookupTable{Type: LookupContext, Subtables: []Subtable{ctx}},
		&LookupTable{Type: LookupSingle, Subtables: []Subtable{nested}},
	)

	seq := glyph.New([]glyph.ID{1, 2, 9})
	c.Apply(seq)

	if diff := cmp.Diff([]glyph.ID{101, 2, 9}, seq.IDs()); diff != "" {
		t.Error(diff)
	}
}

func TestChainApplySkipsWhenBloomExcludes(t *testing.T) {
	single := &Gsub1_1{Cov: coverage.Table{10: 0}, Delta: 5}
	c := chainFor(t, &LookupTable{Type: LookupSingle, Subtables: []Subtable{single}})

	seq := glyph.New([]glyph.ID{20, 30})
	c.Apply(seq)

	if diff := cmp.Diff([]glyph.ID{20, 30}, seq.IDs()); diff != "" {
		t.Error("sequence mutated despite no glyph being in lookup's coverage:", diff)
	}
}
