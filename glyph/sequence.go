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

package glyph

import (
	"unsafe"

	"github.com/textlayout/gsub/bloom"
)

// growthFactor is the amortized-growth factor used when a Sequence's
// backing array must be enlarged, matching the `* 1.3` growth rule of
// the reference GlyphArray implementation.
const growthFactor = 1.3

// Sequence is a growable, ordered sequence of glyph IDs. It is the
// mutable string the substitution engine rewrites in place: lookups
// replace, expand, and contract it as they fire.
//
// A Sequence is owned exclusively by its current caller; nothing in this
// package makes it safe to mutate concurrently.
type Sequence struct {
	ids []ID

	bloomCache bloom.Digest
	bloomValid bool
}

// New returns a Sequence containing a copy of ids.
func New(ids []ID) *Sequence {
	s := &Sequence{ids: append([]ID(nil), ids...)}
	return s
}

// Len returns the number of glyphs currently in the sequence.
func (s *Sequence) Len() int {
	return len(s.ids)
}

// IDs returns the sequence's glyph IDs as a slice. The slice aliases the
// Sequence's backing array and must not be retained across a mutation.
func (s *Sequence) IDs() []ID {
	return s.ids
}

// At returns the glyph ID at position i.
func (s *Sequence) At(i int) ID {
	return s.ids[i]
}

func (s *Sequence) invalidate() {
	s.bloomValid = false
}

// grow ensures the backing array has room for at least n elements,
// without changing Len(). Growth is amortized (factor 1.3) so that
// repeated appends and splices stay linear overall.
func (s *Sequence) grow(n int) {
	if cap(s.ids) >= n {
		return
	}
	newCap := int(float64(cap(s.ids)) * growthFactor)
	if newCap < n {
		newCap = n
	}
	next := make([]ID, len(s.ids), newCap)
	copy(next, s.ids)
	s.ids = next
}

// Append extends the sequence with the given glyph IDs.
func (s *Sequence) Append(ids ...ID) {
	s.grow(len(s.ids) + len(ids))
	s.ids = append(s.ids, ids...)
	s.invalidate()
}

// ReplaceAt replaces the single glyph at position i. i must be < Len().
func (s *Sequence) ReplaceAt(i int, g ID) {
	if i >= len(s.ids) {
		panic("glyph: ReplaceAt index out of range")
	}
	s.ids[i] = g
	s.invalidate()
}

// Shrink decreases the length by n. n must be <= Len().
func (s *Sequence) Shrink(n int) {
	if n > len(s.ids) {
		panic("glyph: Shrink count exceeds length")
	}
	s.ids = s.ids[:len(s.ids)-n]
	s.invalidate()
}

// Splice writes src at dstIndex, growing the sequence if the write
// extends past the current length. It tolerates src aliasing part of
// the Sequence's own backing array: the contract is that, after return,
// the destination holds a copy of src's contents as they were at the
// time of the call, even if a reallocation would otherwise have
// invalidated an aliasing src pointer mid-copy.
func (s *Sequence) Splice(dstIndex int, src []ID) {
	if dstIndex > len(s.ids) {
		panic("glyph: Splice index out of range")
	}
	end := dstIndex + len(src)

	// If src aliases our own backing array, grab a private copy before
	// any reallocation or overlapping copy can disturb it. This is the
	// "staging buffer on reallocation paths" strategy from spec §4.2/§9.
	if aliases(s.ids, src) {
		staged := make([]ID, len(src))
		copy(staged, src)
		src = staged
	}

	if end > len(s.ids) {
		s.grow(end)
		s.ids = s.ids[:end]
	}
	copy(s.ids[dstIndex:end], src)
	s.invalidate()
}

// aliases reports whether src shares backing storage with base, using
// the standard pointer-range containment test over each slice's full
// capacity. This decides only whether Splice must stage a defensive
// copy before writing; it never affects the copy's correctness.
func aliases(base, src []ID) bool {
	if cap(base) == 0 || cap(src) == 0 {
		return false
	}
	baseStart := uintptr(unsafe.Pointer(unsafe.SliceData(base[:cap(base)])))
	baseEnd := baseStart + uintptr(cap(base))*unsafe.Sizeof(ID(0))
	srcStart := uintptr(unsafe.Pointer(unsafe.SliceData(src[:cap(src)])))
	srcEnd := srcStart + uintptr(cap(src))*unsafe.Sizeof(ID(0))
	return baseStart < srcEnd && srcStart < baseEnd
}

// ReplaceRange replaces the glyphs in [start,end) with src, growing or
// shrinking the sequence as needed when src's length differs from the
// replaced range -- the general form Multiple Substitution (one glyph
// becoming several) and Ligature Substitution (several glyphs becoming
// one) both need. Like Splice, it tolerates src aliasing the sequence's
// own backing array.
func (s *Sequence) ReplaceRange(start, end int, src []ID) {
	if start < 0 || end > len(s.ids) || start > end {
		panic("glyph: ReplaceRange index out of range")
	}
	if aliases(s.ids, src) {
		staged := make([]ID, len(src))
		copy(staged, src)
		src = staged
	}

	oldLen := len(s.ids)
	tailLen := oldLen - end
	newLen := start + len(src) + tailLen

	if newLen > oldLen {
		s.grow(newLen)
		s.ids = s.ids[:newLen]
	}
	copy(s.ids[start+len(src):start+len(src)+tailLen], s.ids[end:oldLen])
	if newLen < oldLen {
		s.ids = s.ids[:newLen]
	}
	copy(s.ids[start:start+len(src)], src)
	s.invalidate()
}

// Bloom returns the cached Bloom digest of the sequence's contents,
// recomputing it (and folding in the universal short-circuit) if the
// cache was invalidated by a mutation.
func (s *Sequence) Bloom() bloom.Digest {
	if s.bloomValid {
		return s.bloomCache
	}
	var d bloom.Digest
	for _, g := range s.ids {
		d = d.Union(bloom.Of(uint16(g)))
		if d.IsUniversal() {
			break
		}
	}
	s.bloomCache = d
	s.bloomValid = true
	return d
}
