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

import "github.com/textlayout/gsub/otf"

// Feature associates a feature tag (e.g. "liga", "calt", "frac") with
// the lookups that implement it.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#feature-list-table
type Feature struct {
	Tag     otf.Tag
	Lookups []LookupIndex
}

// FeatureList contains the information of a GSUB table's FeatureList,
// indexed by FeatureIndex.
type FeatureList []*Feature

func readFeatureList(v otf.View, base int) (FeatureList, error) {
	featureCount, err := v.U16At(base, 0)
	if err != nil {
		return nil, err
	}

	list := make(FeatureList, featureCount)
	for i := 0; i < int(featureCount); i++ {
		recPos := 2 + 6*i
		tag, err := v.TagAt(base, recPos)
		if err != nil {
			return nil, err
		}
		offset, err := v.U16At(base, recPos+4)
		if err != nil {
			return nil, err
		}

		featurePos := base + int(offset)
		// FeatureParamsOffset (2 bytes) is skipped: no GSUB feature uses
		// it (it is GPOS- and OpenType-Math-specific).
		lookupIndices, err := v.U16SliceAt(featurePos, 2)
		if err != nil {
			return nil, err
		}
		lookups := make([]LookupIndex, len(lookupIndices))
		for j, idx := range lookupIndices {
			lookups[j] = LookupIndex(idx)
		}
		list[i] = &Feature{Tag: tag, Lookups: lookups}
	}
	return list, nil
}
