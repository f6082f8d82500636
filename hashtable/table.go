// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hashtable

import "code.hybscloud.com/sx/internal/assert"

// Table maps uint32 keys to int32 values using open addressing with
// linear probing and Fibonacci-hashed initial buckets. Not safe for
// concurrent use.
type Table struct {
	keys     []uint32
	values   []int32
	bitshift int
	count    int
}

// NewTable allocates a Table whose capacity is the next power of two at
// or above capacity.
func NewTable(capacity int) *Table {
	assert.That(capacity > 0, "hashtable: capacity must be positive")
	cap2 := nearestPow2(capacity)
	return &Table{
		keys:     make([]uint32, cap2),
		values:   make([]int32, cap2),
		bitshift: calcBitshift(cap2),
	}
}

// Count reports how many keys are currently stored.
func (t *Table) Count() int { return t.count }

// Capacity reports the table's bucket count.
func (t *Table) Capacity() int { return len(t.keys) }

// Add inserts key with value and returns the bucket index it landed in.
// key must not be 0 or 0xFFFFFFFF (both reserved). Panics (in sxdebug
// builds) if the table is already full.
func (t *Table) Add(key uint32, value int32) int {
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

// Find returns key's value and true, or (0, false) if key is not present.
func (t *Table) Find(key uint32) (int32, bool) {
	idx := t.findIndex(key)
	if idx < 0 {
		return 0, false
	}
	return t.values[idx], true
}

func (t *Table) findIndex(key uint32) int {
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

// Delete removes key if present, leaving a tombstone behind so later
// probes for other keys keep walking past this bucket. Returns whether
// key was present.
func (t *Table) Delete(key uint32) bool {
	idx := t.findIndex(key)
	if idx < 0 {
		return false
	}
	t.keys[idx] = tombstoneKey
	t.values[idx] = 0
	t.count--
	return true
}

// Clear empties the table in place, keeping its current capacity.
func (t *Table) Clear() {
	for i := range t.keys {
		t.keys[i] = emptyKey
	}
	t.count = 0
}

// Grow replaces the table's backing storage with one of double the
// capacity and rehashes every live entry into it.
func (t *Table) Grow() {
	next := NewTable(len(t.keys) * 2)
	for i, k := range t.keys {
		if k != emptyKey && k != tombstoneKey {
			next.Add(k, t.values[i])
		}
	}
	*t = *next
}
