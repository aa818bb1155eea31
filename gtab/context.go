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

// SeqRule is a single rule of a SeqContext1 rule set: the glyphs that
// must follow the anchor (the anchor itself is in Cov, so it is not
// repeated here), and the nested lookups to run over the match.
type SeqRule struct {
	Input   []glyph.ID
	Actions []seqLookupRecord
}

// SeqContext1 is a Sequence Context subtable (type 5, format 1):
// glyph-for-glyph matching of a simple glyph context.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#sequence-context-format-1-simple-glyph-contexts
type SeqContext1 struct {
	Cov   coverage.Table
	Rules [][]*SeqRule // indexed by coverage index
}

func readSeqContext1(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	seqRuleSetOffsets, err := v.U16SliceAt(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}

	rules := make([][]*SeqRule, len(seqRuleSetOffsets))
	for i, setOffs := range seqRuleSetOffsets {
		base := subtablePos + int(setOffs)
		ruleOffsets, err := v.U16SliceAt(base, 0)
		if err != nil {
			return nil, err
		}
		rules[i] = make([]*SeqRule, len(ruleOffsets))
		for j, ruleOffs := range ruleOffsets {
			rulePos := base + int(ruleOffs)
			glyphCount, err := v.U16At(rulePos, 0)
			if err != nil {
				return nil, err
			}
			if glyphCount == 0 {
				return nil, malformed("zero glyphCount in SeqContext1 rule")
			}
			seqLookupCount, err := v.U16At(rulePos, 2)
			if err != nil {
				return nil, err
			}
			rawInput, err := v.U16Array(rulePos, 4, int(glyphCount)-1)
			if err != nil {
				return nil, err
			}
			actions, err := readSeqLookupRecords(v, rulePos+4+2*(int(glyphCount)-1), int(seqLookupCount))
			if err != nil {
				return nil, err
			}
			rules[i][j] = &SeqRule{Input: toGIDs(rawInput), Actions: actions}
		}
	}

	return &SeqContext1{Cov: cov, Rules: rules}, nil
}

func readSeqLookupRecords(v otf.View, base int, count int) ([]seqLookupRecord, error) {
	out := make([]seqLookupRecord, count)
	for i := range out {
		seqIndex, err := v.U16At(base, 4*i)
		if err != nil {
			return nil, err
		}
		lookupIndex, err := v.U16At(base, 4*i+2)
		if err != nil {
			return nil, err
		}
		out[i] = seqLookupRecord{SequenceIndex: seqIndex, LookupListIndex: LookupIndex(lookupIndex)}
	}
	return out, nil
}

func (l *SeqContext1) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	idx, ok := l.Cov.Index(gid)
	if !ok || idx >= len(l.Rules) {
		return 0, nil, false
	}

ruleLoop:
	for _, rule := range l.Rules[idx] {
		p := cursor
		matchPos := []int{p}
		for _, want := range rule.Input {
			p++
			if p >= limit || seq.At(p) != want {
				continue ruleLoop
			}
			matchPos = append(matchPos, p)
		}
		return p + 1, &subtableResult{inputPos: matchPos, actions: rule.Actions}, true
	}
	return 0, nil, false
}

func (l *SeqContext1) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}

// ClassSequenceRule is the format-2 analogue of SeqRule: it matches by
// glyph class rather than glyph identity.
type ClassSequenceRule struct {
	Input   []uint16
	Actions []seqLookupRecord
}

// SeqContext2 is a Sequence Context subtable (type 5, format 2):
// class-based matching of a glyph context.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#sequence-context-format-2-class-based-glyph-contexts
type SeqContext2 struct {
	Cov     coverage.Table
	Classes classdef.Table
	Rules   [][]*ClassSequenceRule // indexed by class, not coverage index
}

func readSeqContext2(v otf.View, subtablePos int) (Subtable, error) {
	coverageOffset, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	classDefOffset, err := v.U16At(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	classSeqRuleSetOffsets, err := v.U16SliceAt(subtablePos, 6)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(v, subtablePos, int(coverageOffset))
	if err != nil {
		return nil, err
	}
	classes, err := classdef.Read(v, subtablePos, int(classDefOffset))
	if err != nil {
		return nil, err
	}

	rules := make([][]*ClassSequenceRule, len(classSeqRuleSetOffsets))
	for i, setOffs := range classSeqRuleSetOffsets {
		if setOffs == 0 {
			continue
		}
		base := subtablePos + int(setOffs)
		ruleOffsets, err := v.U16SliceAt(base, 0)
		if err != nil {
			return nil, err
		}
		rules[i] = make([]*ClassSequenceRule, len(ruleOffsets))
		for j, ruleOffs := range ruleOffsets {
			rulePos := base + int(ruleOffs)
			glyphCount, err := v.U16At(rulePos, 0)
			if err != nil {
				return nil, err
			}
			if glyphCount == 0 {
				return nil, malformed("zero glyphCount in SeqContext2 rule")
			}
			seqLookupCount, err := v.U16At(rulePos, 2)
			if err != nil {
				return nil, err
			}
			input, err := v.U16Array(rulePos, 4, int(glyphCount)-1)
			if err != nil {
				return nil, err
			}
			actions, err := readSeqLookupRecords(v, rulePos+4+2*(int(glyphCount)-1), int(seqLookupCount))
			if err != nil {
				return nil, err
			}
			rules[i][j] = &ClassSequenceRule{Input: input, Actions: actions}
		}
	}

	return &SeqContext2{Cov: cov, Classes: classes, Rules: rules}, nil
}

func (l *SeqContext2) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	gid := seq.At(cursor)
	if !l.Cov.Contains(gid) {
		return 0, nil, false
	}
	cls := int(l.Classes.Class(gid))
	if cls >= len(l.Rules) {
		return 0, nil, false
	}

ruleLoop:
	for _, rule := range l.Rules[cls] {
		p := cursor
		matchPos := []int{p}
		for _, want := range rule.Input {
			p++
			if p >= limit || l.Classes.Class(seq.At(p)) != want {
				continue ruleLoop
			}
			matchPos = append(matchPos, p)
		}
		return p + 1, &subtableResult{inputPos: matchPos, actions: rule.Actions}, true
	}
	return 0, nil, false
}

func (l *SeqContext2) startBloom() bloom.Digest {
	return l.Cov.Bloom()
}

// SeqContext3 is a Sequence Context subtable (type 5, format 3): a
// single rule given as a direct list of coverage tables, one per
// position, with no rule sets to choose among.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#sequence-context-format-3-coverage-based-glyph-contexts
type SeqContext3 struct {
	Cov     []coverage.Table
	Actions []seqLookupRecord
}

func readSeqContext3(v otf.View, subtablePos int) (Subtable, error) {
	glyphCount, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	if glyphCount == 0 {
		return nil, malformed("zero glyphCount in SeqContext3")
	}
	seqLookupCount, err := v.U16At(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	coverageOffsets, err := v.U16Array(subtablePos, 6, int(glyphCount))
	if err != nil {
		return nil, err
	}
	actions, err := readSeqLookupRecords(v, subtablePos+6+2*int(glyphCount), int(seqLookupCount))
	if err != nil {
		return nil, err
	}

	cov := make([]coverage.Table, glyphCount)
	for i, offs := range coverageOffsets {
		cov[i], err = coverage.Read(v, subtablePos, int(offs))
		if err != nil {
			return nil, err
		}
	}

	return &SeqContext3{Cov: cov, Actions: actions}, nil
}

func (l *SeqContext3) apply(seq *glyph.Sequence, cursor, limit int) (int, *subtableResult, bool) {
	if !l.Cov[0].Contains(seq.At(cursor)) {
		return 0, nil, false
	}
	p := cursor
	matchPos := []int{p}
	for _, cov := range l.Cov[1:] {
		p++
		if p >= limit || !cov.Contains(seq.At(p)) {
			return 0, nil, false
		}
		matchPos = append(matchPos, p)
	}
	return p + 1, &subtableResult{inputPos: matchPos, actions: l.Actions}, true
}

func (l *SeqContext3) startBloom() bloom.Digest {
	return l.Cov[0].Bloom()
}
