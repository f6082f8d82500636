// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc_test

import (
	"testing"

	"code.hybscloud.com/sx/alloc"
)

func TestStackLIFOFree(t *testing.T) {
	s := alloc.NewStack(256)

	p1 := alloc.Alloc(s, 16, 8)
	p2 := alloc.Alloc(s, 16, 8)
	if p1 == nil || p2 == nil {
		t.Fatal("Alloc: got nil")
	}

	alloc.Free(s, p2)
	alloc.Free(s, p1)

	if s.Peak() == 0 {
		t.Fatal("Peak should reflect allocations made before freeing")
	}
}

func TestStackReuseAfterFullUnwind(t *testing.T) {
	s := alloc.NewStack(256)

	p1 := alloc.Alloc(s, 16, 8)
	alloc.Free(s, p1)

	p2 := alloc.Alloc(s, 16, 8)
	if p2 != p1 {
		t.Fatalf("after unwinding to empty, allocation should reuse the base: got %p, want %p", p2, p1)
	}
}

func TestStackExhaustion(t *testing.T) {
	s := alloc.NewStack(32)
	if alloc.Alloc(s, 64, 8) != nil {
		t.Fatal("Alloc beyond arena capacity should return nil")
	}
}

func TestStackInPlaceGrowOfTop(t *testing.T) {
	s := alloc.NewStack(256)

	p := alloc.Alloc(s, 16, 8)
	if p == nil {
		t.Fatal("Alloc: got nil")
	}
	grown := alloc.Realloc(s, p, 32, 8)
	if grown != p {
		t.Fatalf("growing the top allocation should not move it: got %p, want %p", grown, p)
	}
}
