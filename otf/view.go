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

package otf

import "fmt"

// View is an immutable, zero-copy window onto a byte range of a GSUB
// table. It is a lightweight value type: copying a View is cheap (it
// just copies a slice header), and a View never owns the bytes it
// points into -- that memory is owned by whoever read the font file.
//
// All scalar reads are big-endian, per the OpenType wire format.
type View struct {
	data []byte
}

// NewView wraps raw bytes (typically an entire GSUB table) in a View.
func NewView(data []byte) View {
	return View{data: data}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the view's underlying bytes. Callers must not mutate the
// returned slice: the wire format is documented as immutable (spec §6).
func (v View) Bytes() []byte {
	return v.data
}

// MalformedTableError reports an out-of-bounds offset, a truncated
// record, or an unrecognized format/count field encountered while
// walking a GSUB table. It corresponds to the `MalformedTable` error
// kind in spec §7.
type MalformedTableError struct {
	SubSystem string
	Reason    string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("%s: malformed table: %s", e.SubSystem, e.Reason)
}

func malformed(reason string) error {
	return &MalformedTableError{SubSystem: "gsub/otf", Reason: reason}
}

func (v View) checkRange(base, size int) error {
	if base < 0 || size < 0 || base+size > len(v.data) {
		return malformed(fmt.Sprintf("offset %d+%d out of range (table length %d)", base, size, len(v.data)))
	}
	return nil
}

// U8At reads an unsigned byte at base+offset.
func (v View) U8At(base, offset int) (byte, error) {
	pos := base + offset
	if err := v.checkRange(pos, 1); err != nil {
		return 0, err
	}
	return v.data[pos], nil
}

// U16At reads a big-endian uint16 at base+offset.
func (v View) U16At(base, offset int) (uint16, error) {
	pos := base + offset
	if err := v.checkRange(pos, 2); err != nil {
		return 0, err
	}
	return uint16(v.data[pos])<<8 | uint16(v.data[pos+1]), nil
}

// I16At reads a big-endian signed int16 at base+offset.
func (v View) I16At(base, offset int) (int16, error) {
	u, err := v.U16At(base, offset)
	return int16(u), err
}

// U32At reads a big-endian uint32 at base+offset.
func (v View) U32At(base, offset int) (uint32, error) {
	pos := base + offset
	if err := v.checkRange(pos, 4); err != nil {
		return 0, err
	}
	return uint32(v.data[pos])<<24 | uint32(v.data[pos+1])<<16 |
		uint32(v.data[pos+2])<<8 | uint32(v.data[pos+3]), nil
}

// TagAt reads a four-byte Tag at base+offset.
func (v View) TagAt(base, offset int) (Tag, error) {
	pos := base + offset
	if err := v.checkRange(pos, 4); err != nil {
		return Tag{}, err
	}
	var t Tag
	copy(t[:], v.data[pos:pos+4])
	return t, nil
}

// SubtableAt returns a View of the bytes starting at base+offset,
// running to the end of the enclosing table. It does not itself bounds
// check beyond the start position; accessors on the returned View
// perform their own checks.
func (v View) SubtableAt(base, offset int) (View, error) {
	pos := base + offset
	if pos < 0 || pos > len(v.data) {
		return View{}, malformed(fmt.Sprintf("sub-table offset %d out of range", pos))
	}
	return View{data: v.data[pos:]}, nil
}

// U16SliceAt reads a count-prefixed array of uint16 values: a uint16
// count at base+offset, followed by count big-endian uint16 values.
func (v View) U16SliceAt(base, offset int) ([]uint16, error) {
	count, err := v.U16At(base, offset)
	if err != nil {
		return nil, err
	}
	return v.U16Array(base, offset+2, int(count))
}

// U16Array reads count consecutive big-endian uint16 values starting at
// base+offset (no count prefix -- the caller already knows the count,
// typically from an earlier field in a variable-width record).
func (v View) U16Array(base, offset, count int) ([]uint16, error) {
	pos := base + offset
	if err := v.checkRange(pos, 2*count); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		p := pos + 2*i
		out[i] = uint16(v.data[p])<<8 | uint16(v.data[p+1])
	}
	return out, nil
}
