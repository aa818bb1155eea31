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

// Package bloom implements the three-lane Bloom digest used by the gtab
// substitution engine to skip lookups whose coverage cannot possibly
// intersect a glyph sequence.
//
// The construction follows HarfBuzz's glyph-set digest: each glyph ID is
// hashed into three single-bit masks, using three different shift amounts
// chosen to decorrelate on the 16-bit glyph-ID space. A digest is the
// bitwise OR of its elements' masks in each lane.
package bloom

import "math/bits"

// lane width in bits, fixed at 64 regardless of the host machine word size
// so that encoded/serialized forms of a digest are portable.
const laneBits = 64

// Shift amounts for the three lanes. These values are load-bearing: they
// are chosen (following HarfBuzz/libatures) so that adjacent glyph IDs do
// not collide in all three lanes simultaneously.
const (
	shiftA = 9
	shiftB = 0
	shiftC = 4
)

// Digest is a 192-bit probabilistic digest of a set of 16-bit glyph IDs.
//
// Digest supports false positives ("possibly contains" may say yes for a
// glyph that is not in the set) but never false negatives: if a glyph is
// truly in the set, every probe against its digest reports "possibly yes".
type Digest struct {
	a, b, c uint64
}

// Null is the digest of the empty set.
var Null = Digest{}

// Universal is the digest that possibly-contains every glyph ID. It is
// the safe, conservative answer to return whenever a precise digest
// cannot be computed (for example for an unsupported or malformed
// sub-table): over-approximating a Bloom digest is always sound.
var Universal = Digest{a: ^uint64(0), b: ^uint64(0), c: ^uint64(0)}

func mask(gid uint16, shift uint) uint64 {
	return uint64(1) << ((uint(gid) >> shift) % laneBits)
}

// Of returns the digest of a single glyph ID.
func Of(gid uint16) Digest {
	return Digest{
		a: mask(gid, shiftA),
		b: mask(gid, shiftB),
		c: mask(gid, shiftC),
	}
}

// laneRange computes the bit pattern for one lane covering the contiguous
// glyph range [lo, hi], following the formula in spec §4.3: if the span
// saturates the lane width the lane is universal, otherwise the result is
// a contiguous run of set bits between the two endpoints' masks.
func laneRange(lo, hi uint16, shift uint) uint64 {
	if (uint(hi)>>shift)-(uint(lo)>>shift) >= laneBits-1 {
		return ^uint64(0)
	}
	ma := mask(lo, shift)
	mb := mask(hi, shift)
	borrow := uint64(0)
	if mb < ma {
		borrow = 1
	}
	return mb + (mb - ma) - borrow
}

// Range returns a digest that is a superset of the union of the digests
// of every glyph ID in the contiguous range [lo, hi] (inclusive).
func Range(lo, hi uint16) Digest {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Digest{
		a: laneRange(lo, hi, shiftA),
		b: laneRange(lo, hi, shiftB),
		c: laneRange(lo, hi, shiftC),
	}
}

// Union returns the digest of the union of the sets d and other digest.
func (d Digest) Union(other Digest) Digest {
	return Digest{a: d.a | other.a, b: d.b | other.b, c: d.c | other.c}
}

// Add folds a single glyph ID into the digest, returning the updated
// digest. It does not modify d.
func (d Digest) Add(gid uint16) Digest {
	return d.Union(Of(gid))
}

// PossiblyIntersects reports whether the sets digested by d and other
// might share an element. A false result is a proof that the sets are
// disjoint; a true result is not a guarantee that they intersect.
func (d Digest) PossiblyIntersects(other Digest) bool {
	return d.a&other.a != 0 && d.b&other.b != 0 && d.c&other.c != 0
}

// PossiblyContains reports whether the set digested by d might be a
// superset of the set digested by other. A false result proves it is not;
// a true result is not a guarantee.
func (d Digest) PossiblyContains(other Digest) bool {
	return d.a&other.a == other.a && d.b&other.b == other.b && d.c&other.c == other.c
}

// IsUniversal reports whether d is saturated to the all-ones digest, in
// which case every future probe against it will report "possibly yes".
func (d Digest) IsUniversal() bool {
	return d == Universal
}

// Selectivity returns the fraction, in [0,1], of the 16-bit glyph ID space
// that this digest's lanes do NOT rule out, estimated from the number of
// set bits across the three lanes (1 for Universal, 0 for Null). It is
// purely diagnostic and has no bearing on substitution correctness.
func (d Digest) Selectivity() float64 {
	set := bits.OnesCount64(d.a) + bits.OnesCount64(d.b) + bits.OnesCount64(d.c)
	return float64(set) / float64(3*laneBits)
}

// String renders the digest as three hex lanes, for debugging.
func (d Digest) String() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 0, 3*16+2)
	appendHex := func(v uint64) {
		for i := 60; i >= 0; i -= 4 {
			buf = append(buf, hexDigits[(v>>uint(i))&0xf])
		}
	}
	appendHex(d.a)
	buf = append(buf, '/')
	appendHex(d.b)
	buf = append(buf, '/')
	appendHex(d.c)
	return string(buf)
}
