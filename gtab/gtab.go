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

	"github.com/textlayout/gsub/otf"
)

// Table holds the decoded contents of an OpenType "GSUB" table: the
// script/language-system list, the feature list, and the lookup list
// that implements those features. A font loader supplies the raw
// table bytes; this package never reads a font file itself.
type Table struct {
	ScriptList  ScriptList
	FeatureList FeatureList
	LookupList  LookupList
}

// Read decodes a "GSUB" table from data, the table's raw bytes exactly
// as stored in the font file (no leading file-level offset).
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#gsub-header
func Read(data []byte) (*Table, error) {
	v := otf.NewView(data)

	majorVersion, err := v.U16At(0, 0)
	if err != nil {
		return nil, err
	}
	minorVersion, err := v.U16At(0, 2)
	if err != nil {
		return nil, err
	}
	if majorVersion != 1 || minorVersion > 1 {
		return nil, notSupported(fmt.Sprintf("GSUB table version %d.%d", majorVersion, minorVersion))
	}

	scriptListOffset, err := v.U16At(0, 4)
	if err != nil {
		return nil, err
	}
	featureListOffset, err := v.U16At(0, 6)
	if err != nil {
		return nil, err
	}
	lookupListOffset, err := v.U16At(0, 8)
	if err != nil {
		return nil, err
	}

	// Feature variations (minor version 1) let a variable font swap in
	// alternate feature lookups per design-space region. Out of scope:
	// this package resolves one concrete lookup list per chain, and a
	// variable font's instancer is expected to have already picked the
	// active variation before handing bytes to Read. Reject rather than
	// silently ignore a table that actually carries a variations table.
	if minorVersion == 1 {
		featureVariationsOffset, err := v.U32At(0, 10)
		if err != nil {
			return nil, err
		}
		if featureVariationsOffset != 0 {
			return nil, notSupported("GSUB feature variations")
		}
	}

	if scriptListOffset == 0 || lookupListOffset == 0 {
		return &Table{ScriptList: make(ScriptList)}, nil
	}

	t := &Table{}
	t.ScriptList, err = readScriptList(v, int(scriptListOffset))
	if err != nil {
		return nil, err
	}
	t.FeatureList, err = readFeatureList(v, int(featureListOffset))
	if err != nil {
		return nil, err
	}
	t.LookupList, err = readLookupList(v, int(lookupListOffset))
	if err != nil {
		return nil, err
	}

	return t, nil
}
