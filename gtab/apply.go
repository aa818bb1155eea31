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
)

// Apply runs every lookup in the chain, in order, over seq, mutating it
// in place.
func (c *Chain) Apply(seq *glyph.Sequence) {
	for _, lt := range c.lookups {
		c.applyLookup(lt, seq, 0)
	}
}

// applyLookup walks seq with a cursor -- forward for every lookup type
// except ReverseChainSingle (type 8), which walks back to front -- and
// invokes applyLookupAt wherever the lookup's aggregate Bloom cannot
// rule out a match.
func (c *Chain) applyLookup(lt *LookupTable, seq *glyph.Sequence, depth int) {
	entry := c.lookupBlooms(lt)
	if !entry.aggregate.PossiblyIntersects(seq.Bloom()) {
		return
	}

	if lt.Type == LookupReverseChainSingle {
		for cursor := seq.Len() - 1; cursor >= 0; cursor-- {
			if entry.aggregate.PossiblyContains(bloom.Of(uint16(seq.At(cursor)))) {
				if next, ok := c.applyLookupAt(lt, entry.subtables, seq, cursor, depth); ok {
					cursor = next
				}
			}
		}
		return
	}

	for cursor := 0; cursor < seq.Len(); {
		if entry.aggregate.PossiblyContains(bloom.Of(uint16(seq.At(cursor)))) {
			if next, ok := c.applyLookupAt(lt, entry.subtables, seq, cursor, depth); ok {
				cursor = next
				continue
			}
		}
		cursor++
	}
}

// applyLookupAt tries each of lt's sub-tables in turn at position
// cursor, in wire order, stopping at the first one that applies. blooms
// holds the per-sub-table start Blooms in the same order as
// lt.Subtables; a nil blooms (used for the nested invocations
// apply_sequence_rule makes) skips the per-sub-table Bloom gate
// entirely and tries every sub-table.
//
// The returned int is the next cursor position a forward walk should
// continue from (already accounting for however many glyphs the match
// consumed); for a reverse walk the caller still steps the cursor down
// by one afterwards.
func (c *Chain) applyLookupAt(lt *LookupTable, blooms []bloom.Digest, seq *glyph.Sequence, cursor, depth int) (int, bool) {
	limit := seq.Len()
	gidBloom := bloom.Of(uint16(seq.At(cursor)))

	for i, st := range lt.Subtables {
		if blooms != nil && !blooms[i].PossiblyContains(gidBloom) {
			continue
		}
		next, res, ok := st.apply(seq, cursor, limit)
		if !ok {
			continue
		}
		if res != nil {
			next = c.applySequenceRule(res, seq, depth)
		}
		return next, true
	}
	return 0, false
}

// applySequenceRule runs the nested-lookup records of a matched context
// or chained-context rule over the matched input span: it copies the
// span into a scratch sequence, applies each record's target lookup at
// its SequenceIndex within the scratch (with Bloom filtering skipped,
// per the engine's contract for nested invocations), then splices the
// scratch back over the original span.
func (c *Chain) applySequenceRule(res *subtableResult, seq *glyph.Sequence, depth int) int {
	start := res.inputPos[0]
	end := res.inputPos[len(res.inputPos)-1] + 1

	if depth >= c.maxNestingDepth {
		c.sink.warn("max-nesting-depth",
			"gtab: nested lookup recursion exceeded max depth %d; skipping remaining actions", c.maxNestingDepth)
		return end
	}

	scratch := glyph.New(seq.IDs()[start:end])
	for _, action := range res.actions {
		if int(action.LookupListIndex) >= len(c.table.LookupList) {
			continue
		}
		if int(action.SequenceIndex) >= scratch.Len() {
			continue
		}
		target := c.table.LookupList[action.LookupListIndex]
		c.applyLookupAt(target, nil, scratch, int(action.SequenceIndex), depth+1)
	}

	seq.ReplaceRange(start, end, scratch.IDs())
	return start + scratch.Len()
}
