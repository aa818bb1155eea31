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
	"github.com/textlayout/gsub/otf"
)

// LangSys holds the feature indices a script/language-system pulls in:
// at most one required feature, plus any number of optional ones.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#language-system-table
type LangSys struct {
	RequiredFeature FeatureIndex // noFeature if this LangSys has none
	Features        []FeatureIndex
}

// Script holds the default and per-language LangSys records for one
// script tag.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#script-table-and-language-system-record
type Script struct {
	DefaultLangSys *LangSys
	LangSyses      map[otf.Tag]*LangSys
}

// ScriptList contains the information of a GSUB table's ScriptList.
// Scripts and languages are kept as raw wire Tags, not mapped through a
// locale enumeration: the DFLT/dflt/latn fallback chain and the
// required-feature sentinel both operate directly on tags (see
// ChainBuilder.Build). ResolveScriptLang (locale.go) offers a convenience
// wrapper for callers who would rather resolve a BCP-47 language tag.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#script-list-table-and-script-record
type ScriptList map[otf.Tag]*Script

func readScriptList(v otf.View, base int) (ScriptList, error) {
	scriptCount, err := v.U16At(base, 0)
	if err != nil {
		return nil, err
	}

	list := make(ScriptList, scriptCount)
	for i := 0; i < int(scriptCount); i++ {
		recPos := 2 + 6*i
		tag, err := v.TagAt(base, recPos)
		if err != nil {
			return nil, err
		}
		offset, err := v.U16At(base, recPos+4)
		if err != nil {
			return nil, err
		}
		sc, err := readScriptTable(v, base+int(offset))
		if err != nil {
			return nil, err
		}
		list[tag] = sc
	}
	return list, nil
}

func readScriptTable(v otf.View, base int) (*Script, error) {
	defaultLangSysOffset, err := v.U16At(base, 0)
	if err != nil {
		return nil, err
	}
	langSysCount, err := v.U16At(base, 2)
	if err != nil {
		return nil, err
	}

	sc := &Script{LangSyses: make(map[otf.Tag]*LangSys, langSysCount)}
	if defaultLangSysOffset != 0 {
		sc.DefaultLangSys, err = readLangSysTable(v, base+int(defaultLangSysOffset))
		if err != nil {
			return nil, err
		}
	}

	for i := 0; i < int(langSysCount); i++ {
		recPos := 4 + 6*i
		tag, err := v.TagAt(base, recPos)
		if err != nil {
			return nil, err
		}
		offset, err := v.U16At(base, recPos+4)
		if err != nil {
			return nil, err
		}
		ls, err := readLangSysTable(v, base+int(offset))
		if err != nil {
			return nil, err
		}
		sc.LangSyses[tag] = ls
	}
	return sc, nil
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#language-system-table
func readLangSysTable(v otf.View, base int) (*LangSys, error) {
	lookupOrderOffset, err := v.U16At(base, 0)
	if err != nil {
		return nil, err
	}
	if lookupOrderOffset != 0 {
		return nil, notSupported("LangSys lookup reordering table")
	}
	requiredFeatureIndex, err := v.U16At(base, 2)
	if err != nil {
		return nil, err
	}
	featureIndices, err := v.U16SliceAt(base, 4)
	if err != nil {
		return nil, err
	}

	features := make([]FeatureIndex, len(featureIndices))
	for i, idx := range featureIndices {
		features[i] = FeatureIndex(idx)
	}

	return &LangSys{
		RequiredFeature: FeatureIndex(requiredFeatureIndex),
		Features:        features,
	}, nil
}
