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

// Package gtab implements the OpenType GSUB glyph substitution engine: a
// Lookup Selector that resolves a script, language, and ordered feature
// list into a Prepared Chain, and a Substitution Engine that walks a
// glyph sequence applying that chain's lookups, all against the
// zero-copy view in package otf.
package gtab

// LookupIndex enumerates lookups. It is used as an index into a
// LookupList.
type LookupIndex uint16

// FeatureIndex enumerates features. It is used as an index into a
// FeatureList. noFeature is the wire sentinel for "no required feature".
type FeatureIndex uint16

const noFeature FeatureIndex = 0xFFFF

// LookupType identifies which of the eight GSUB lookup types a
// LookupTable implements. Extension (type 7) subtables are resolved
// at read time, so a LookupTable's Type is the type of whatever the
// extension records point to; only an extension lookup with no
// subtables keeps Type 7.
type LookupType uint16

// The eight GSUB lookup types.
const (
	LookupSingle             LookupType = 1
	LookupMultiple           LookupType = 2
	LookupAlternate          LookupType = 3
	LookupLigature           LookupType = 4
	LookupContext            LookupType = 5
	LookupChainedContext     LookupType = 6
	LookupExtension          LookupType = 7
	LookupReverseChainSingle LookupType = 8
)

func (t LookupType) String() string {
	switch t {
	case LookupSingle:
		return "Single"
	case LookupMultiple:
		return "Multiple"
	case LookupAlternate:
		return "Alternate"
	case LookupLigature:
		return "Ligature"
	case LookupContext:
		return "Context"
	case LookupChainedContext:
		return "ChainedContext"
	case LookupExtension:
		return "Extension"
	case LookupReverseChainSingle:
		return "ReverseChainSingle"
	default:
		return "Unknown"
	}
}

// seqLookupRecord is a single nested-lookup invocation attached to a
// matched context or chained-context rule: apply LookupListIndex at the
// position SequenceIndex refers to within the rule's matched glyphs.
type seqLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex LookupIndex
}

// subtableResult is returned by Subtable.apply for the two context
// lookup types (5 and 6): it describes a match without performing any
// substitution itself, leaving nested-lookup application (and any
// resulting length changes) to the engine.
type subtableResult struct {
	// inputPos holds the absolute sequence positions of the matched
	// glyphs: the anchor glyph (the one the lookup started at) followed
	// by each subsequent input-sequence match, in order. Lookahead and
	// backtrack glyphs are not included: SequenceIndex in a
	// seqLookupRecord can only ever address the input run.
	inputPos []int
	actions  []seqLookupRecord
}
