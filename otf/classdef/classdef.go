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

// Package classdef reads OpenType "Class Definition Tables", used by
// format-2 (class-based) context and chained-context substitutions to
// partition glyph IDs into small integer classes.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table
package classdef

import (
	"fmt"

	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/otf"
)

// Table maps glyph IDs to class values. Glyphs not present map to class 0,
// the implicit default class.
type Table map[glyph.ID]uint16

// Class returns the class of gid (0 if unlisted).
func (t Table) Class(gid glyph.ID) uint16 {
	return t[gid]
}

// Read decodes a Class Definition table (format 1 or 2) from v at the
// given offset relative to base.
func Read(v otf.View, base, offset int) (Table, error) {
	format, err := v.U16At(base, offset)
	if err != nil {
		return nil, err
	}

	t := make(Table)
	switch format {
	case 1:
		startGlyph, err := v.U16At(base, offset+2)
		if err != nil {
			return nil, err
		}
		classValues, err := v.U16SliceAt(base, offset+4)
		if err != nil {
			return nil, err
		}
		for i, class := range classValues {
			if class == 0 {
				continue
			}
			t[glyph.ID(int(startGlyph)+i)] = class
		}

	case 2:
		rangeCount, err := v.U16At(base, offset+2)
		if err != nil {
			return nil, err
		}
		pos := offset + 4
		for i := 0; i < int(rangeCount); i++ {
			startGID, err := v.U16At(base, pos)
			if err != nil {
				return nil, err
			}
			endGID, err := v.U16At(base, pos+2)
			if err != nil {
				return nil, err
			}
			class, err := v.U16At(base, pos+4)
			if err != nil {
				return nil, err
			}
			pos += 6
			if startGID > endGID {
				return nil, &otf.MalformedTableError{
					SubSystem: "classdef",
					Reason:    "invalid class range (format 2)",
				}
			}
			if class != 0 {
				for g := int(startGID); g <= int(endGID); g++ {
					t[glyph.ID(g)] = class
				}
			}
		}

	default:
		return nil, &otf.MalformedTableError{
			SubSystem: "classdef",
			Reason:    fmt.Sprintf("unknown class definition format %d", format),
		}
	}

	return t, nil
}
