// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc_test

import (
	"testing"

	"code.hybscloud.com/sx/alloc"
)

func TestLinearAllocAndReset(t *testing.T) {
	lin := alloc.NewLinear(256)

	p1 := alloc.Alloc(lin, 16, 8)
	if p1 == nil {
		t.Fatal("Alloc: got nil")
	}
	p2 := alloc.Alloc(lin, 16, 8)
	if p2 == nil {
		t.Fatal("Alloc: got nil")
	}
	if p1 == p2 {
		t.Fatal("two allocations returned the same pointer")
	}

	lin.Reset()
	p3 := alloc.Alloc(lin, 16, 8)
	if uintptr(p3) != uintptr(p1) {
		t.Fatalf("after Reset, first alloc should reuse arena start: got %p, want %p", p3, p1)
	}
}

func TestLinearExhaustion(t *testing.T) {
	lin := alloc.NewLinear(32)
	if alloc.Alloc(lin, 64, 8) != nil {
		t.Fatal("Alloc beyond arena capacity should return nil")
	}
}

func TestLinearInPlaceGrowOfLastAllocation(t *testing.T) {
	lin := alloc.NewLinear(256)

	p := alloc.Alloc(lin, 16, 8)
	if p == nil {
		t.Fatal("Alloc: got nil")
	}
	(*(*byte)(p)) = 0xAB

	grown := alloc.Realloc(lin, p, 32, 8)
	if grown != p {
		t.Fatalf("growing the most recent allocation should not move it: got %p, want %p", grown, p)
	}
	if *(*byte)(grown) != 0xAB {
		t.Fatal("in-place grow lost existing contents")
	}
}

func TestLinearAlignment(t *testing.T) {
	lin := alloc.NewLinear(256)
	p := alloc.Alloc(lin, 8, 32)
	if p == nil {
		t.Fatal("Alloc: got nil")
	}
	if uintptr(p)%32 != 0 {
		t.Fatalf("pointer %p not aligned to 32", p)
	}
}

func TestGrowableLinearGrowsOnExhaustion(t *testing.T) {
	g := alloc.NewGrowableLinear(alloc.NewMalloc(), 32)
	defer g.Close()

	for i := 0; i < 8; i++ {
		p := alloc.Alloc(g, 16, 8)
		if p == nil {
			t.Fatalf("Alloc(%d): got nil", i)
		}
		*(*byte)(p) = byte(i)
	}
	if g.ArenaCount() < 2 {
		t.Fatalf("ArenaCount: got %d, want growth beyond the initial arena", g.ArenaCount())
	}
}

func TestGrowableLinearResetReleasesExtraBins(t *testing.T) {
	g := alloc.NewGrowableLinear(alloc.NewMalloc(), 32)
	defer g.Close()

	for i := 0; i < 8; i++ {
		alloc.Alloc(g, 16, 8)
	}
	if g.ArenaCount() < 2 {
		t.Fatalf("ArenaCount: got %d, want growth beyond the initial arena", g.ArenaCount())
	}

	g.Reset()
	if g.ArenaCount() != 1 {
		t.Fatalf("ArenaCount after Reset: got %d, want 1", g.ArenaCount())
	}
}
