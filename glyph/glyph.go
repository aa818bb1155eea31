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

// Package glyph contains the glyph ID type and the growable glyph
// sequence the substitution engine mutates in place.
package glyph

// ID enumerates the glyphs in a font. The first glyph has index 0 and is
// conventionally used to indicate a missing character. This package does
// not interpret glyph IDs beyond their numeric value; mapping characters
// to glyph IDs is an upstream shaper's job.
type ID uint16
