package glyph

import (
	"testing"

	"github.com/textlayout/gsub/bloom"
)

func TestAppendAndBloom(t *testing.T) {
	s := New([]ID{1, 2, 3})
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	b1 := s.Bloom()
	s.Append(4, 5)
	b2 := s.Bloom()
	if !b2.PossiblyContains(b1) {
		t.Fatalf("bloom after append does not contain bloom before append")
	}
}

func TestReplaceAtInvalidatesBloom(t *testing.T) {
	s := New([]ID{10, 20, 30})
	_ = s.Bloom()
	s.ReplaceAt(1, 9999)
	if got := s.At(1); got != 9999 {
		t.Fatalf("At(1) = %d, want 9999", got)
	}
	if !s.Bloom().PossiblyContains(bloom.Of(9999)) {
		t.Fatalf("Bloom after ReplaceAt does not possibly-contain the new glyph 9999")
	}
}

func TestShrink(t *testing.T) {
	s := New([]ID{1, 2, 3, 4})
	s.Shrink(2)
	if s.Len() != 2 {
		t.Fatalf("len after shrink = %d, want 2", s.Len())
	}
	if s.At(0) != 1 || s.At(1) != 2 {
		t.Fatalf("unexpected contents after shrink: %v", s.IDs())
	}
}

func TestSpliceGrow(t *testing.T) {
	s := New([]ID{1, 2, 3})
	s.Splice(1, []ID{8, 9, 10, 11})
	want := []ID{1, 8, 9, 10, 11}
	got := s.IDs()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
}

func TestSpliceOverlappingSelf(t *testing.T) {
	s := New([]ID{1, 2, 3, 4, 5})
	// Shift the tail [2,3,4,5] one position to the right: a pattern that
	// stresses overlap between destination and source within the same
	// backing array.
	tail := s.IDs()[1:5]
	s.Splice(2, tail)
	want := []ID{1, 2, 2, 3, 4}
	got := s.IDs()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
}

func TestReplaceRangeGrow(t *testing.T) {
	s := New([]ID{1, 2, 3})
	s.ReplaceRange(1, 2, []ID{20, 21, 22})
	want := []ID{1, 20, 21, 22, 3}
	got := s.IDs()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
}

func TestReplaceRangeShrink(t *testing.T) {
	s := New([]ID{1, 2, 3, 4, 5})
	s.ReplaceRange(1, 4, []ID{99})
	want := []ID{1, 99, 5}
	got := s.IDs()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
}

func TestReplaceRangeSameLength(t *testing.T) {
	s := New([]ID{1, 2, 3})
	s.ReplaceRange(0, 1, []ID{7})
	if s.At(0) != 7 || s.Len() != 3 {
		t.Fatalf("unexpected contents: %v", s.IDs())
	}
}

func TestSpliceDeleteByShrinking(t *testing.T) {
	// Deletion is expressed as a splice of the tail over the deleted
	// range, followed by a shrink -- the pattern used throughout the
	// substitution engine.
	s := New([]ID{1, 2, 3, 4, 5})
	tail := append([]ID(nil), s.IDs()[3:]...)
	s.Splice(1, tail)
	s.Shrink(2)
	want := []ID{1, 4, 5}
	got := s.IDs()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
}
