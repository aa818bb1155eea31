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
	"fmt"

	"github.com/textlayout/gsub/bloom"
	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf"
)

// LookupList contains the information of a GSUB table's LookupList.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-list-table
type LookupList []*LookupTable

// LookupTable is a single decoded GSUB lookup: a type and the ordered
// subtables tried, in turn, until one applies.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-table
type LookupTable struct {
	Type      LookupType
	Subtables []Subtable
}

// Subtable is the interface every decoded GSUB subtable format
// implements, regardless of lookup type.
type Subtable interface {
	// apply attempts to match and (for lookup types 1, 2, 4 and 8)
	// perform a substitution at seq position cursor, restricted to
	// positions [cursor,limit). It reports ok=false if the subtable
	// does not apply at cursor.
	//
	// For lookup types 5 and 6, no substitution is performed directly:
	// apply instead returns a non-nil subtableResult describing the
	// match, leaving nested-lookup application to the engine.
	apply(seq *glyph.Sequence, cursor, limit int) (next int, res *subtableResult, ok bool)

	// startBloom returns the Bloom digest of glyphs that can possibly
	// match this subtable's anchor (first input) position.
	startBloom() bloom.Digest
}

type subtableKey struct {
	lookupType LookupType
	format     uint16
}

type subtableReaderFunc func(v otf.View, pos int) (Subtable, error)

var subtableReaders = map[subtableKey]subtableReaderFunc{
	{LookupSingle, 1}:             readGsub1_1,
	{LookupSingle, 2}:             readGsub1_2,
	{LookupMultiple, 1}:           readGsub2_1,
	{LookupAlternate, 1}:          readGsub3_1,
	{LookupLigature, 1}:           readGsub4_1,
	{LookupContext, 1}:            readSeqContext1,
	{LookupContext, 2}:            readSeqContext2,
	{LookupContext, 3}:            readSeqContext3,
	{LookupChainedContext, 1}:     readChainedSeqContext1,
	{LookupChainedContext, 2}:     readChainedSeqContext2,
	{LookupChainedContext, 3}:     readChainedSeqContext3,
	{LookupReverseChainSingle, 1}: readGsub8_1,
}

func readLookupList(v otf.View, base int) (LookupList, error) {
	lookupOffsets, err := v.U16SliceAt(base, 0)
	if err != nil {
		return nil, err
	}

	list := make(LookupList, len(lookupOffsets))
	for i, offset := range lookupOffsets {
		lookupPos := base + int(offset)
		lookup, err := readLookupTable(v, lookupPos)
		if err != nil {
			return nil, err
		}
		list[i] = lookup
	}
	return list, nil
}

func readLookupTable(v otf.View, lookupPos int) (*LookupTable, error) {
	rawType, err := v.U16At(lookupPos, 0)
	if err != nil {
		return nil, err
	}
	lookupFlags, err := v.U16At(lookupPos, 2)
	if err != nil {
		return nil, err
	}
	subtableOffsets, err := v.U16SliceAt(lookupPos, 4)
	if err != nil {
		return nil, err
	}

	headerLen := 6 + 2*len(subtableOffsets)
	if lookupFlags&0x0010 != 0 { // UseMarkFilteringSet; mark filtering is out of scope (see spec Non-goals), but the field must still be skipped to find the end of the header.
		headerLen += 2
	}
	_ = headerLen

	lookupType := LookupType(rawType)
	subtables := make([]Subtable, len(subtableOffsets))
	for i, offs := range subtableOffsets {
		st, err := readSubtable(v, lookupType, lookupPos+int(offs))
		if err != nil {
			return nil, err
		}
		subtables[i] = st
	}

	if lookupType == LookupExtension {
		resolved, realType, err := resolveExtensionSubtables(v, subtables)
		if err != nil {
			return nil, err
		}
		subtables = resolved
		lookupType = realType
	}

	return &LookupTable{Type: lookupType, Subtables: subtables}, nil
}

func readSubtable(v otf.View, lookupType LookupType, pos int) (Subtable, error) {
	format, err := v.U16At(pos, 0)
	if err != nil {
		return nil, err
	}
	reader, ok := subtableReaders[subtableKey{lookupType, format}]
	if !ok {
		if lookupType == LookupExtension && format == 1 {
			return readExtensionSubtable(v, pos)
		}
		return &unknownFormatSubtable{lookupType: lookupType, format: format}, nil
	}
	return reader(v, pos)
}

// extensionSubtable is the transient result of decoding a type-7
// extension record; readLookupTable immediately replaces it with the
// subtable it points to (resolveExtensionSubtables), so it is never
// exposed through the Subtable interface to the rest of the engine.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#71-extension-substitution-subtable-format-1
type extensionSubtable struct {
	realType LookupType
	pos      int
}

func readExtensionSubtable(v otf.View, subtablePos int) (Subtable, error) {
	realType, err := v.U16At(subtablePos, 2)
	if err != nil {
		return nil, err
	}
	extensionOffset, err := v.U32At(subtablePos, 4)
	if err != nil {
		return nil, err
	}
	return &extensionSubtable{
		realType: LookupType(realType),
		pos:      subtablePos + int(extensionOffset),
	}, nil
}

func (l *extensionSubtable) apply(*glyph.Sequence, int, int) (int, *subtableResult, bool) {
	panic("gtab: extensionSubtable.apply is unreachable: resolved at read time")
}

func (l *extensionSubtable) startBloom() bloom.Digest {
	panic("gtab: extensionSubtable.startBloom is unreachable: resolved at read time")
}

func resolveExtensionSubtables(v otf.View, subtables []Subtable) ([]Subtable, LookupType, error) {
	if len(subtables) == 0 {
		return subtables, LookupExtension, nil
	}
	first, ok := subtables[0].(*extensionSubtable)
	if !ok {
		return nil, 0, malformed("extension lookup with non-extension subtable")
	}
	realType := first.realType
	if realType == LookupExtension {
		return nil, 0, malformed("nested extension subtable")
	}

	resolved := make([]Subtable, len(subtables))
	for i, st := range subtables {
		ext, ok := st.(*extensionSubtable)
		if !ok || ext.realType != realType {
			return nil, 0, malformed("inconsistent extension subtables")
		}
		real, err := readSubtable(v, realType, ext.pos)
		if err != nil {
			return nil, 0, err
		}
		resolved[i] = real
	}
	return resolved, realType, nil
}

// unknownFormatSubtable stands in for a subtable format this package
// does not recognize. It is skipped rather than treated as a fatal
// error: a Universal Bloom digest means the engine never prunes it
// away as "can't possibly match", even though it also never applies,
// which keeps the rest of the lookup's subtables reachable instead of
// failing the whole chain build.
type unknownFormatSubtable struct {
	lookupType LookupType
	format     uint16
}

func (l *unknownFormatSubtable) apply(*glyph.Sequence, int, int) (int, *subtableResult, bool) {
	return 0, nil, false
}

func (l *unknownFormatSubtable) startBloom() bloom.Digest {
	return bloom.Universal
}

func (l *unknownFormatSubtable) String() string {
	return fmt.Sprintf("unknown GSUB subtable format %d.%d", l.lookupType, l.format)
}
