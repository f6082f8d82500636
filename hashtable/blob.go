// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hashtable

import "code.hybscloud.com/sx/internal/assert"

// BlobTable is Table generalized to hold any value type, replacing the
// fixed value-stride byte-blob storage of the original C implementation
// with a plain generic slice.
type BlobTable[V any] struct {
	keys     []uint32
	values   []V
	bitshift int
	count    int
}

// NewBlobTable allocates a BlobTable whose capacity is the next power of
// two at or above capacity.
func NewBlobTable[V any](capacity int) *BlobTable[V] {
	assert.That(capacity > 0, "hashtable: capacity must be positive")
	cap2 := nearestPow2(capacity)
	return &BlobTable[V]{
		keys:     make([]uint32, cap2),
		values:   make([]V, cap2),
		bitshift: calcBitshift(cap2),
	}
}

// Count reports how many keys are currently stored.
func (t *BlobTable[V]) Count() int { return t.count }

// Capacity reports the table's bucket count.
func (t *BlobTable[V]) Capacity() int { return len(t.keys) }

// Add inserts key with value and returns the bucket index it landed in.
func (t *BlobTable[V]) Add(key uint32, value V) int {
	assert.That(key != emptyKey && key != tombstoneKey, "hashtable: key 0 and 0xFFFFFFFF are reserved")
	assert.That(t.count < len(t.keys), "hashtable: Add on a full table")

	h := fibHash(key, t.bitshift)
	cnt := uint32(len(t.keys))
	for t.keys[h] != emptyKey && t.keys[h] != tombstoneKey {
		h = (h + 1) % cnt
	}
	t.keys[h] = key
	t.values[h] = value
	t.count++
	return int(h)
}

// Find returns a pointer to key's value, or nil if key is not present.
// The pointer is invalidated by the next Add, Delete, Clear, or Grow.
func (t *BlobTable[V]) Find(key uint32) *V {
	idx := t.findIndex(key)
	if idx < 0 {
		return nil
	}
	return &t.values[idx]
}

func (t *BlobTable[V]) findIndex(key uint32) int {
	h := fibHash(key, t.bitshift)
	cnt := uint32(len(t.keys))
	if t.keys[h] == key {
		return int(h)
	}
	for i := uint32(1); i < cnt; i++ {
		idx := (h + i) % cnt
		if t.keys[idx] == emptyKey {
			return -1
		}
		if t.keys[idx] == key {
			return int(idx)
		}
	}
	return -1
}

// Delete removes key if present, leaving a tombstone behind. Returns
// whether key was present.
func (t *BlobTable[V]) Delete(key uint32) bool {
	idx := t.findIndex(key)
	if idx < 0 {
		return false
	}
	var zero V
	t.keys[idx] = tombstoneKey
	t.values[idx] = zero
	t.count--
	return true
}

// Clear empties the table in place, keeping its current capacity.
func (t *BlobTable[V]) Clear() {
	var zero V
	for i := range t.keys {
		t.keys[i] = emptyKey
		t.values[i] = zero
	}
	t.count = 0
}

// Grow replaces the table's backing storage with one of double the
// capacity and rehashes every live entry into it.
func (t *BlobTable[V]) Grow() {
	next := NewBlobTable[V](len(t.keys) * 2)
	for i, k := range t.keys {
		if k != emptyKey && k != tombstoneKey {
			next.Add(k, t.values[i])
		}
	}
	*t = *next
}
