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

import "testing"

func TestAddrTableGetSetMiss(t *testing.T) {
	h := newAddrTable[int]()
	if _, ok := h.get(12345); ok {
		t.Fatal("get on empty table reported a hit")
	}
	h.set(12345, 7)
	v, ok := h.get(12345)
	if !ok || v != 7 {
		t.Fatalf("get = %v, %v, want 7, true", v, ok)
	}
	if _, ok := h.get(99999); ok {
		t.Fatal("get reported a hit for a key never set")
	}
}

func TestAddrTableOverwrite(t *testing.T) {
	h := newAddrTable[string]()
	h.set(1, "a")
	h.set(1, "b")
	v, ok := h.get(1)
	if !ok || v != "b" {
		t.Fatalf("get = %v, %v, want b, true", v, ok)
	}
}

func TestAddrTableResizeOnCollisionChain(t *testing.T) {
	h := newAddrTable[int]()
	// Every one of these addresses hashes to the same bucket ((addr>>1) %
	// size == 1), so inserting more than hashRetries of them forces a
	// resize partway through.
	n := hashRetries + 5
	addrs := make([]uintptr, n)
	for i := 0; i < n; i++ {
		addrs[i] = uintptr(i)*uintptr(hashInitialSize)*2 + 2
		h.set(addrs[i], i)
	}
	if h.size <= hashInitialSize {
		t.Fatalf("size = %d, want > %d after a collision chain of %d entries", h.size, hashInitialSize, n)
	}
	for i, addr := range addrs {
		v, ok := h.get(addr)
		if !ok || v != i {
			t.Fatalf("get(%d) = %v, %v, want %d, true", i, v, ok, i)
		}
	}
}
