package bloom

import (
	"math/rand"
	"testing"
)

func TestOfSelfContained(t *testing.T) {
	for _, gid := range []uint16{0, 1, 9, 255, 256, 65535} {
		d := Of(gid)
		if !d.PossiblyContains(Of(gid)) {
			t.Errorf("Of(%d) does not possibly-contain itself", gid)
		}
	}
}

func TestUniversalContainsEverything(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		gid := uint16(r.Intn(65536))
		if !Universal.PossiblyContains(Of(gid)) {
			t.Fatalf("Universal does not possibly-contain glyph %d", gid)
		}
		if !Universal.PossiblyIntersects(Of(gid)) {
			t.Fatalf("Universal does not possibly-intersect glyph %d", gid)
		}
	}
}

func TestNullIntersectsNothing(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		gid := uint16(r.Intn(65536))
		if Null.PossiblyIntersects(Of(gid)) {
			t.Fatalf("Null possibly-intersects glyph %d", gid)
		}
	}
}

// TestRangeSoundness checks the invariant from spec §8: the digest of a
// contiguous range is a superset of the union of the digests of every
// glyph in that range.
func TestRangeSoundness(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		lo := uint16(r.Intn(65536))
		span := r.Intn(2000)
		hi := lo
		if int(lo)+span <= 65535 {
			hi = lo + uint16(span)
		}
		rangeDigest := Range(lo, hi)

		var union Digest
		step := 1
		if int(hi)-int(lo) > 500 {
			step = (int(hi) - int(lo)) / 500
		}
		for g := int(lo); g <= int(hi); g += step {
			union = union.Union(Of(uint16(g)))
			if !rangeDigest.PossiblyContains(Of(uint16(g))) {
				t.Fatalf("range digest for [%d,%d] does not possibly-contain %d", lo, hi, g)
			}
		}
		if !rangeDigest.PossiblyContains(union) {
			t.Fatalf("range digest for [%d,%d] is not a superset of the folded union", lo, hi)
		}
	}
}

func TestUnionContainsOperands(t *testing.T) {
	a := Of(100).Union(Of(200))
	b := Of(300)
	u := a.Union(b)
	if !u.PossiblyContains(a) || !u.PossiblyContains(b) {
		t.Fatalf("union %v does not possibly-contain its operands", u)
	}
}

func TestSelectivityOfUniversalIsOne(t *testing.T) {
	if Universal.Selectivity() != 1 {
		t.Fatalf("expected selectivity 1, got %v", Universal.Selectivity())
	}
	if Null.Selectivity() != 0 {
		t.Fatalf("expected selectivity 0, got %v", Null.Selectivity())
	}
}
