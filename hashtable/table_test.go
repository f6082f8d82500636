// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hashtable_test

import (
	"testing"

	"code.hybscloud.com/sx/hashtable"
)

func TestAddFind(t *testing.T) {
	tbl := hashtable.NewTable(16)

	tbl.Add(42, 100)
	tbl.Add(7, 200)

	if v, ok := tbl.Find(42); !ok || v != 100 {
		t.Fatalf("Find(42): got (%d, %v), want (100, true)", v, ok)
	}
	if v, ok := tbl.Find(7); !ok || v != 200 {
		t.Fatalf("Find(7): got (%d, %v), want (200, true)", v, ok)
	}
	if _, ok := tbl.Find(999); ok {
		t.Fatal("Find(999): got true, want false")
	}
}

func TestCapacityRoundsToPowerOfTwo(t *testing.T) {
	tbl := hashtable.NewTable(10)
	if tbl.Capacity() != 16 {
		t.Fatalf("Capacity: got %d, want 16", tbl.Capacity())
	}
}

func TestCountMatchesInsertions(t *testing.T) {
	tbl := hashtable.NewTable(64)
	for i := uint32(1); i <= 50; i++ {
		tbl.Add(i, int32(i*10))
	}
	if tbl.Count() != 50 {
		t.Fatalf("Count: got %d, want 50", tbl.Count())
	}
	for i := uint32(1); i <= 50; i++ {
		if v, ok := tbl.Find(i); !ok || v != int32(i*10) {
			t.Fatalf("Find(%d): got (%d, %v), want (%d, true)", i, v, ok, i*10)
		}
	}
}

// TestDeleteDoesNotBreakLaterProbes exercises the tombstone hazard: a key
// whose probe chain runs through a deleted slot must still be found by
// walking past the tombstone.
func TestDeleteDoesNotBreakLaterProbes(t *testing.T) {
	tbl := hashtable.NewTable(4)

	// With 4 buckets, key 2 hashes to bucket 0 and keys 3 and 8 both hash
	// to bucket 3. Key 8 finds bucket 3 taken, wraps past bucket 0 (key 2)
	// and lands in bucket 1, so deleting key 2 leaves a tombstone in the
	// middle of key 8's probe chain.
	keys := []uint32{2, 3, 8}
	for i, k := range keys {
		tbl.Add(k, int32(i))
	}

	if !tbl.Delete(keys[0]) {
		t.Fatalf("Delete(%d): got false, want true", keys[0])
	}

	for i, k := range keys[1:] {
		if v, ok := tbl.Find(k); !ok || v != int32(i+1) {
			t.Fatalf("Find(%d) after deleting a colliding key: got (%d, %v), want (%d, true)", k, v, ok, i+1)
		}
	}
	if _, ok := tbl.Find(keys[0]); ok {
		t.Fatalf("Find(%d) after delete: got true, want false", keys[0])
	}
}

func TestGrowPreservesEntries(t *testing.T) {
	tbl := hashtable.NewTable(4)
	for i := uint32(1); i <= 4; i++ {
		tbl.Add(i, int32(i))
	}
	tbl.Grow()

	if tbl.Capacity() != 8 {
		t.Fatalf("Capacity after Grow: got %d, want 8", tbl.Capacity())
	}
	for i := uint32(1); i <= 4; i++ {
		if v, ok := tbl.Find(i); !ok || v != int32(i) {
			t.Fatalf("Find(%d) after Grow: got (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

func TestClearResetsCount(t *testing.T) {
	tbl := hashtable.NewTable(8)
	tbl.Add(1, 1)
	tbl.Add(2, 2)
	tbl.Clear()
	if tbl.Count() != 0 {
		t.Fatalf("Count after Clear: got %d, want 0", tbl.Count())
	}
	if _, ok := tbl.Find(1); ok {
		t.Fatal("Find after Clear: got true, want false")
	}
}
