// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vmem_test

import (
	"testing"

	"code.hybscloud.com/sx/vmem"
)

func TestReserveCommitDecommit(t *testing.T) {
	ctx, err := vmem.Reserve(0, 8)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer ctx.Release()

	if ctx.MaxPages() != 8 {
		t.Fatalf("MaxPages: got %d, want 8", ctx.MaxPages())
	}
	if ctx.NumPages() != 0 {
		t.Fatalf("NumPages before commit: got %d, want 0", ctx.NumPages())
	}

	buf := ctx.Commit(0)
	if buf == nil {
		t.Fatal("Commit(0): got nil")
	}
	if len(buf) != ctx.PageSize() {
		t.Fatalf("Commit(0) len: got %d, want %d", len(buf), ctx.PageSize())
	}
	if ctx.NumPages() != 1 {
		t.Fatalf("NumPages after commit: got %d, want 1", ctx.NumPages())
	}

	buf[0] = 0x42
	buf[len(buf)-1] = 0x43

	ctx.Decommit(0)
	if ctx.NumPages() != 0 {
		t.Fatalf("NumPages after decommit: got %d, want 0", ctx.NumPages())
	}
}

func TestCommitRangeIsContiguous(t *testing.T) {
	ctx, err := vmem.Reserve(0, 4)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer ctx.Release()

	buf := ctx.CommitRange(0, 3)
	if buf == nil {
		t.Fatal("CommitRange: got nil")
	}
	if len(buf) != ctx.PageSize()*3 {
		t.Fatalf("CommitRange len: got %d, want %d", len(buf), ctx.PageSize()*3)
	}
	if ctx.NumPages() != 3 {
		t.Fatalf("NumPages: got %d, want 3", ctx.NumPages())
	}

	ctx.DecommitRange(0, 3)
	if ctx.NumPages() != 0 {
		t.Fatalf("NumPages after DecommitRange: got %d, want 0", ctx.NumPages())
	}
}

func TestCommitBeyondCapacityFails(t *testing.T) {
	ctx, err := vmem.Reserve(0, 2)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer ctx.Release()

	if ctx.CommitRange(0, 2) == nil {
		t.Fatal("CommitRange(0, 2): got nil, want non-nil")
	}
	if ctx.Commit(1) != nil {
		t.Fatal("Commit(1) after full commit: got non-nil, want nil")
	}
	if ctx.Commit(2) != nil {
		t.Fatal("Commit(2) out of range: got non-nil, want nil")
	}
}

func TestPointerStabilityAcrossNeighborDecommit(t *testing.T) {
	ctx, err := vmem.Reserve(0, 4)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer ctx.Release()

	p0 := ctx.Commit(0)
	p1 := ctx.Commit(1)
	if p0 == nil || p1 == nil {
		t.Fatal("Commit: got nil")
	}
	p0[0] = 7

	ctx.Decommit(1)

	if p0[0] != 7 {
		t.Fatalf("page 0 disturbed by decommitting page 1: got %d, want 7", p0[0])
	}
}

func TestPagesNeeded(t *testing.T) {
	ps := vmem.PageSize()
	cases := []struct {
		bytes uintptr
		want  int
	}{
		{0, 0},
		{1, 1},
		{uintptr(ps), 1},
		{uintptr(ps) + 1, 2},
	}
	for _, c := range cases {
		if got := vmem.PagesNeeded(c.bytes); got != c.want {
			t.Errorf("PagesNeeded(%d): got %d, want %d", c.bytes, got, c.want)
		}
	}
}
