// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc_test

import (
	"testing"

	"code.hybscloud.com/sx/alloc"
)

func TestMallocRoundTrip(t *testing.T) {
	m := alloc.NewMalloc()

	p := alloc.Alloc(m, 64, 8)
	if p == nil {
		t.Fatal("Alloc: got nil")
	}
	buf := (*[64]byte)(p)
	for i := range buf {
		buf[i] = byte(i)
	}

	grown := alloc.Realloc(m, p, 128, 8)
	if grown == nil {
		t.Fatal("Realloc: got nil")
	}
	big := (*[64]byte)(grown)
	for i := range big {
		if big[i] != byte(i) {
			t.Fatalf("Realloc lost byte %d: got %d, want %d", i, big[i], byte(i))
		}
	}

	alloc.Free(m, grown)
}

func TestMallocOverAligned(t *testing.T) {
	m := alloc.NewMalloc()
	p := alloc.Alloc(m, 32, 128)
	if p == nil {
		t.Fatal("Alloc: got nil")
	}
	if uintptr(p)%128 != 0 {
		t.Fatalf("pointer %p not aligned to 128", p)
	}
}

func TestMallocFreeDoesNotPanic(t *testing.T) {
	m := alloc.NewMalloc()
	p := alloc.Alloc(m, 16, 8)
	alloc.Free(m, p)
}
