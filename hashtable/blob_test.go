// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hashtable_test

import (
	"testing"

	"code.hybscloud.com/sx/hashtable"
)

type position struct{ x, y, z float32 }

func TestBlobTableAddFind(t *testing.T) {
	tbl := hashtable.NewBlobTable[position](16)

	tbl.Add(1, position{1, 2, 3})
	tbl.Add(2, position{4, 5, 6})

	p := tbl.Find(1)
	if p == nil || *p != (position{1, 2, 3}) {
		t.Fatalf("Find(1): got %v, want {1 2 3}", p)
	}
	if tbl.Find(999) != nil {
		t.Fatal("Find(999): got non-nil, want nil")
	}
}

func TestBlobTableDeleteAndGrow(t *testing.T) {
	tbl := hashtable.NewBlobTable[position](4)
	tbl.Add(1, position{1, 0, 0})
	tbl.Add(2, position{2, 0, 0})
	tbl.Add(3, position{3, 0, 0})

	tbl.Delete(2)
	if tbl.Find(2) != nil {
		t.Fatal("Find(2) after Delete: got non-nil, want nil")
	}
	if p := tbl.Find(3); p == nil || p.x != 3 {
		t.Fatalf("Find(3) after deleting a neighbor: got %v, want {3 0 0}", p)
	}

	tbl.Grow()
	if p := tbl.Find(1); p == nil || p.x != 1 {
		t.Fatalf("Find(1) after Grow: got %v, want {1 0 0}", p)
	}
}
