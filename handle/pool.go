// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handle

import "code.hybscloud.com/sx/internal/assert"

// Pool is a fixed-capacity generation-counted handle pool holding one
// value of type T per live handle. Not safe for concurrent use.
type Pool[T any] struct {
	dense    []Handle
	values   []T
	sparse   []int
	count    int
	capacity int

	genBits, indexBits int
	indexMask, genMask uint32
}

// NewPool allocates a Pool with room for capacity live handles at once.
// genBits sets the width of the generation counter packed into the high
// bits of every Handle this pool issues (see DefaultGenBits); the
// remaining 32-genBits bits address a slot, so capacity must stay below
// MaxCapacityForGenBits(genBits).
func NewPool[T any](capacity int, genBits int) *Pool[T] {
	assert.That(capacity > 0, "handle: capacity must be positive")
	assert.That(genBits > 0 && genBits < 32, "handle: genBits out of range")
	assert.That(capacity < MaxCapacityForGenBits(genBits), "handle: capacity too high for the index width")

	indexBits, indexMask, genMask := maskFor(genBits)
	p := &Pool[T]{
		dense:     make([]Handle, capacity),
		values:    make([]T, capacity),
		sparse:    make([]int, capacity),
		capacity:  capacity,
		genBits:   genBits,
		indexBits: int(indexBits),
		indexMask: indexMask,
		genMask:   genMask,
	}
	p.resetDense()
	return p
}

// Index extracts the slot identity from h, as packed by this pool.
func (p *Pool[T]) Index(h Handle) int { return int(uint32(h) & p.indexMask) }

// Gen extracts the generation counter from h, as packed by this pool.
func (p *Pool[T]) Gen(h Handle) int { return int((uint32(h) >> p.indexBits) & p.genMask) }

func (p *Pool[T]) makeHandle(gen, index int) Handle {
	return Handle((uint32(gen)&p.genMask)<<p.indexBits | (uint32(index) & p.indexMask))
}

func (p *Pool[T]) resetDense() {
	for i := range p.dense {
		p.dense[i] = p.makeHandle(0, i)
	}
}

// Count reports how many handles are currently live.
func (p *Pool[T]) Count() int { return p.count }

// Capacity reports the pool's fixed slot capacity.
func (p *Pool[T]) Capacity() int { return p.capacity }

// Full reports whether the pool has no free slots.
func (p *Pool[T]) Full() bool { return p.count == p.capacity }

// New reserves a slot for value and returns its handle. The second return
// is false if the pool is full.
func (p *Pool[T]) New(value T) (Handle, bool) {
	if p.count >= p.capacity {
		return Invalid, false
	}
	index := p.count
	p.count++

	old := p.dense[index]
	gen := (p.Gen(old) + 1) & int(p.genMask)
	if gen == 0 {
		// Skip generation 0 on wrap so slot 0 never yields the Invalid handle.
		gen = 1
	}
	h := p.makeHandle(gen, p.Index(old))
	p.dense[index] = h
	p.sparse[p.Index(old)] = index
	p.values[index] = value
	return h, true
}

// Delete releases h's slot, making h (and any copy of it) invalid. A
// no-op if h is already invalid.
func (p *Pool[T]) Delete(h Handle) {
	if !p.Valid(h) {
		return
	}
	idx := p.Index(h)
	index := p.sparse[idx]

	p.count--
	lastHandle := p.dense[p.count]
	p.dense[p.count] = h
	p.sparse[p.Index(lastHandle)] = index
	p.dense[index] = lastHandle

	p.values[index] = p.values[p.count]
	var zero T
	p.values[p.count] = zero
}

// Valid reports whether h still refers to a live slot in this pool.
func (p *Pool[T]) Valid(h Handle) bool {
	if h == Invalid {
		return false
	}
	idx := p.Index(h)
	if idx >= p.capacity {
		return false
	}
	index := p.sparse[idx]
	return index < p.count && p.dense[index] == h
}

// Get returns a pointer to h's value and true, or (nil, false) if h is
// not currently valid. The pointer is invalidated by any subsequent New,
// Delete, or Grow call.
func (p *Pool[T]) Get(h Handle) (*T, bool) {
	if !p.Valid(h) {
		return nil, false
	}
	index := p.sparse[p.Index(h)]
	return &p.values[index], true
}

// At returns the i'th live handle, for 0 <= i < Count, in the pool's
// current (swap-remove) internal order.
func (p *Pool[T]) At(i int) Handle {
	assert.That(i < p.count, "handle: At index out of range")
	return p.dense[i]
}

// Reset empties the pool. All previously issued handles become invalid.
func (p *Pool[T]) Reset() {
	p.count = 0
	p.resetDense()
	var zero T
	for i := range p.values {
		p.values[i] = zero
	}
}

// Grow replaces the pool's backing storage with one of newCapacity slots,
// preserving every live handle and value. newCapacity must be >= Capacity.
func (p *Pool[T]) Grow(newCapacity int) {
	assert.That(newCapacity >= p.capacity, "handle: Grow must not shrink the pool")
	assert.That(newCapacity < MaxCapacityForGenBits(p.genBits), "handle: Grow exceeds the index width")

	dense := make([]Handle, newCapacity)
	values := make([]T, newCapacity)
	sparse := make([]int, newCapacity)
	for i := p.capacity; i < newCapacity; i++ {
		dense[i] = p.makeHandle(0, i)
	}
	copy(dense, p.dense)
	copy(values, p.values)
	copy(sparse, p.sparse)

	p.dense, p.values, p.sparse, p.capacity = dense, values, sparse, newCapacity
}
