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
	"github.com/textlayout/gsub/otf/classdef"
	"github.com/textlayout/gsub/otf/coverage"
)

// ChainedSeqRule is a single rule of a ChainedSeqContext1 rule set:
// backtrack and lookahead glyphs (each nearest-first, like Gsub8_1) that
// must surround the input run, plus the input run itself (excluding its
// first glyph, which is in Cov) and the nested lookups to run.
type ChainedSeqRule struct {
	Backtrack []glyph.ID
	Input     []glyph.ID
	Lookahead []glyph.ID
	Actions   []seqLookupRecord
}

// ChainedSeqContext1 is a Chained Sequence Context subtable (type 6,
// format 1): glyph-for-glyph matching of backtrack, input and lookahead
// sequences.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-1-simple-glyph-contexts
type ChainedSeqContext1 struct {
	Cov   coverage.Table
	Rules [][]*ChainedSeqRule // indexed by coverage index
}

func readChainedSeqContext1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	chainedSeqRuleSetOffsets, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}

	rules := make([][]*ChainedSeqRule, len(chainedSeqRuleSetOffsets))
	for i, setOffs := range chainedSeqRuleSetOffsets {
		if setOffs == 0 {
			continue
		}
		base := subtablePos + int(setOffs)
		ruleOffsets, err := v.U16SliceAt(base, 0)
		if err != nil {
			return nil, err
		}
		rules[i] = make([]*ChainedSeqRule, len(ruleOffsets))
		for j, ruleOffs := range ruleOffsets {
			rulePos := base + int(ruleOffs)
			rule, err := readChainedSeqRuleGlyphs(v, rulePos)
			if err != nil {
				return nil, err
			}
			rules[i][j] = rule
		}
	}

	return &ChainedSeqContext1{Cov: cov, Rules: rules}, nil
}

// readChainedSeqRuleGlyphs decodes the glyph-array body shared by a
// format-1 ChainedSequenceRule: backtrackGlyphCount, then that many
// backtrack glyphs, then inputGlyphCount, then inputGlyphCount-1 input
// glyphs (the anchor itself lives in the enclosing Cov), then
// lookaheadGlyphCount, then that many lookahead glyphs, then
// seqLookupCount sequence lookup records.
func readChainedSeqRuleGlyphs(v otf.View, pos int) (*ChainedSeqRule, error) {
	backtrack, err := v.U16SliceAt(pos, 0)
	if err != nil {
		return nil, err
	}
	pos2 := pos + 2 + 2*len(backtrack)

	inputGlyphCount, err := v.U16At(pos2, 0)
	if err != nil {
		return nil, err
	}
	if inputGlyphCount == 0 {
		return nil, malformed("zero inputGlyphCount in chained sequence rule")
	}
	input, err := v.U16Array(pos2, 2, int(inputGlyphCount)-1)
	if err != nil {
		return nil, err
	}
	pos3 := pos2 + 2 + 2*(int(inputGlyphCount)-1)

	lookahead, err := v.U16SliceAt(pos3, 0)
	if err != nil {
		return nil, err
	}
	pos4 := pos3 + 2 + 2*len(lookahead)

	seqLookupCount, err := v.U16At(pos4, 0)
	if err != nil {
		return nil, err
	}
	actions, err := readSeqLookupRecords(v, pos4+2, int(seqLookupCount))
	if err != nil {
		return nil, err
	}

	return &ChainedSeqRule{
		Backtrack: toGIDs(backtrack),
		Input:     toGIDs(input),
		Lookahead: toGIDs(lookahead),
		Actions:   actions,
	}, nil
}

func (l *ChainedSeqContext1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	idx, ok := l.Cov.Index(gid)
	if !ok || idx >= len(l.Rules) {
		return 0, nil, false
	}

ruleLoop:
	for _, rule := range l.Rules[idx] {
		p := cursor
		for _, want := range rule.Backtrack {
			p--
			if p < 0 || seq.At(p) != want {
				continue ruleLoop
			}
		}

		p = cursor
		matchPos := []int{p}
		for _, want := range rule.Input {
			p++
			if p >= limit || seq.At(p) != want {
				continue ruleLoop
			}
			matchPos = append(matchPos, p)
		}

		q := p
		for _, want := range rule.Lookahead {
			q++
			if q >= seq.Len() || seq.At(q) != want {
				continue ruleLoop
			}
		}

		return p + 1, &subtableResult{inputPos: matchPos, actions: rule.Actions}, true
	}
	return 0, nil, false
}

func (l *ChainedSeqContext1) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}

// ChainedClassSequenceRule is the format-2 analogue of ChainedSeqRule:
// backtrack, input and lookahead are matched by glyph class.
type ChainedClassSequenceRule struct {
	Backtrack []uint16
	Input     []uint16
	Lookahead []uint16
	Actions   []seqLookupRecord
}

// ChainedSeqContext2 is a Chained Sequence Context subtable (type 6,
// format 2): class-based matching of backtrack, input and lookahead
// sequences, each against its own class definition table.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-2-class-based-glyph-contexts
type ChainedSeqContext2 struct {
	Cov                coverage.Table
	BacktrackClassDef  classdef.Table
	InputClassDef      classdef.Table
	LookaheadClassDef  classdef.Table
	Rules              [][]*ChainedClassSequenceRule // indexed by input class
}

func readChainedSeqContext2(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	backtrackClassDefOffset, err := v.U16At(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	inputClassDefOffset, err := v.U16At(subtablePos, 6)
	if err != nil {
		return nil, err
	}
	lookaheadClassDefOffset, err := v.U16At(subtablePos, 8)
	if err != nil {
		return nil, err
	}
	classSeqRuleSetOffsets, err := v.U16SliceAt(subtablePos, 10)
	if err != nil {
		return nil, err
	}

	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}
	backtrackClasses, err := classdef.Read(v, subtablePos, int(backtrackClassDefOffset))
	if err != nil {
		return nil, err
	}
	inputClasses, err := classdef.Read(v, subtablePos, int(inputClassDefOffset))
	if err != nil {
		return nil, err
	}
	lookaheadClasses, err := classdef.Read(v, subtablePos, int(lookaheadClassDefOffset))
	if err != nil {
		return nil, err
	}

	rules := make([][]*ChainedClassSequenceRule, len(classSeqRuleSetOffsets))
	for i, setOffs := range classSeqRuleSetOffsets {
		if setOffs == 0 {
			continue
		}
		base := subtablePos + int(setOffs)
		ruleOffsets, err := v.U16SliceAt(base, 0)
		if err != nil {
			return nil, err
		}
		rules[i] = make([]*ChainedClassSequenceRule, len(ruleOffsets))
		for j, ruleOffs := range ruleOffsets {
			rulePos := base + int(ruleOffs)
			rule, err := readChainedClassSequenceRule(v, rulePos)
			if err != nil {
				return nil, err
			}
			rules[i][j] = rule
		}
	}

	return &ChainedSeqContext2{
		Cov:               cov,
		BacktrackClassDef: backtrackClasses,
		InputClassDef:     inputClasses,
		LookaheadClassDef: lookaheadClasses,
		Rules:             rules,
	}, nil
}

func readChainedClassSequenceRule(v otf.View, pos int) (*ChainedClassSequenceRule, error) {
	backtrack, err := v.U16SliceAt(pos, 0)
	if err != nil {
		return nil, err
	}
	pos2 := pos + 2 + 2*len(backtrack)

	inputGlyphCount, err := v.U16At(pos2, 0)
	if err != nil {
		return nil, err
	}
	if inputGlyphCount == 0 {
		return nil, malformed("zero inputGlyphCount in chained class sequence rule")
	}
	input, err := v.U16Array(pos2, 2, int(inputGlyphCount)-1)
	if err != nil {
		return nil, err
	}
	pos3 := pos2 + 2 + 2*(int(inputGlyphCount)-1)

	lookahead, err := v.U16SliceAt(pos3, 0)
	if err != nil {
		return nil, err
	}
	pos4 := pos3 + 2 + 2*len(lookahead)

	seqLookupCount, err := v.U16At(pos4, 0)
	if err != nil {
		return nil, err
	}
	actions, err := readSeqLookupRecords(v, pos4+2, int(seqLookupCount))
	if err != nil {
		return nil, err
	}

	return &ChainedClassSequenceRule{
		Backtrack: backtrack,
		Input:     input,
		Lookahead: lookahead,
		Actions:   actions,
	}, nil
}

func (l *ChainedSeqContext2) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	if !l.Cov.Contains(gid) {
		return 0, nil, false
	}
	cls := int(l.InputClassDef.Class(gid))
	if cls >= len(l.Rules) {
		return 0, nil, false
	}

ruleLoop:
	for _, rule := range l.Rules[cls] {
		p := cursor
		for _, want := range rule.Backtrack {
			p--
			if p < 0 || l.BacktrackClassDef.Class(seq.At(p)) != want {
				continue ruleLoop
			}
		}

		p = cursor
		matchPos := []int{p}
		for _, want := range rule.Input {
			p++
			if p >= limit || l.InputClassDef.Class(seq.At(p)) != want {
				continue ruleLoop
			}
			matchPos = append(matchPos, p)
		}

		q := p
		for _, want := range rule.Lookahead {
			q++
			if q >= seq.Len() || l.LookaheadClassDef.Class(seq.At(q)) != want {
				continue ruleLoop
			}
		}

		return p + 1, &subtableResult{inputPos: matchPos, actions: rule.Actions}, true
	}
	return 0, nil, false
}

func (l *ChainedSeqContext2) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}

// ChainedSeqContext3 is a Chained Sequence Context subtable (type 6,
// format 3): a single rule given as direct coverage-table lists for
// backtrack, input and lookahead, with no rule sets to choose among.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-3-coverage-based-glyph-contexts
type ChainedSeqContext3 struct {
	Backtrack []coverage.Table // nearest-first
	Input     []coverage.Table
	Lookahead []coverage.Table // nearest-first
	Actions   []seqLookupRecord
}

func readChainedSeqContext3(v otf.View, subtablePos int) (Subtable, error) {
	backtrackOffsets, err := v.U16SliceAt(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	pos2 := 4 + 2*len(backtrackOffsets)

	inputOffsets, err := v.U16SliceAt(subtablePos, pos2)
	if err != nil {
		return nil, err
	}
	if len(inputOffsets) == 0 {
		return nil, malformed("zero inputGlyphCount in ChainedSeqContext3")
	}
	pos3 := pos2 + 2 + 2*len(inputOffsets)

	lookaheadOffsets, err := v.U16SliceAt(subtablePos, pos3)
	if err != nil {
		return nil, err
	}
	pos4 := pos3 + 2 + 2*len(lookaheadOffsets)

	seqLookupCount, err := v.U16At(subtablePos, pos4)
	if err != nil {
		return nil, err
	}
	actions, err := readSeqLookupRecords(v, subtablePos+pos4+2, int(seqLookupCount))
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
	input := make([]coverage.Table, len(inputOffsets))
	for i, offs := range inputOffsets {
		input[i], err = coverage.Read(v, subtablePos, int(offs))
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

	return &ChainedSeqContext3{Backtrack: backtrack, Input: input, Lookahead: lookahead, Actions: actions}, nil
}

func (l *ChainedSeqContext3) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	if !l.Input[0].Contains(seq.At(cursor)) {
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
	matchPos := []int{p}
	for _, cov := range l.Input[1:] {
		p++
		if p >= limit || !cov.Contains(seq.At(p)) {
			return 0, nil, false
		}
		matchPos = append(matchPos, p)
	}

	q := p
	for _, cov := range l.Lookahead {
		q++
		if q >= seq.Len() || !cov.Contains(seq.At(q)) {
			return 0, nil, false
		}
	}

	return p + 1, &subtableResult{inputPos: matchPos, actions: l.Actions}, true
}

func (l *ChainedSeqContext3) startBloom() bloom.Digest {
	return l.Input[0].Bloom()
}
