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

// Package otf provides the zero-copy Binary View over a GSUB table's raw
// bytes: bounds-checked, big-endian scalar and sub-table reads relative
// to a containing table's base offset.
package otf

import "fmt"

// Tag is a four-byte ASCII identifier used throughout OpenType for
// scripts, languages, and features. Tags compare byte-wise.
type Tag [4]byte

// ParseTag builds a Tag from a string. Strings shorter than four bytes
// are padded with spaces (the OpenType convention); longer strings are
// truncated.
func ParseTag(s string) Tag {
	var t Tag
	for i := range t {
		if i < len(s) {
			t[i] = s[i]
		} else {
			t[i] = ' '
		}
	}
	return t
}

func (t Tag) String() string {
	return string(t[:])
}

// Reserved tags used throughout script/language/feature resolution.
var (
	TagDefaultUpper = ParseTag("DFLT")
	TagDefaultLower = ParseTag("dflt")
	TagRequired     = ParseTag(" RQD")
	TagLatin        = ParseTag("latn")
)

// IsDefault reports whether t is one of the two default-script/language
// sentinel spellings fonts use ("DFLT" or "dflt").
func (t Tag) IsDefault() bool {
	return t == TagDefaultUpper || t == TagDefaultLower
}

func (t Tag) GoString() string {
	return fmt.Sprintf("otf.Tag(%q)", t.String())
}
