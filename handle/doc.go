// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package handle implements a generation-counted handle pool: a stand-in for
raw pointers into a packed array, safe to hold onto across deletes because
a stale handle is detectable rather than silently aliasing whatever moved
into its old slot.

# Quick start

	pool := handle.NewPool[Enemy](1024, handle.DefaultGenBits)
	h, ok := pool.New(Enemy{HP: 100})
	...
	if e, ok := pool.Get(h); ok {
		e.HP -= 10
	}
	...
	pool.Delete(h)
	pool.Valid(h) // false: the generation embedded in h has been superseded

# Layout

A Pool keeps three parallel arrays sized to its capacity: dense handles,
their associated values, and a sparse index translating a handle's stable
identity to its current position in dense/values. New and Delete are O(1):
Delete swaps the last live slot into the freed position rather than
shifting the array, so iteration order is not insertion order.

Handle encodes a generation counter in its high bits and a stable slot
identity in its low bits (see Pool.Index and Pool.Gen). The split between
the two is configurable per Pool via NewPool's genBits parameter
(DefaultGenBits is a reasonable default); a capacity at or above
MaxCapacityForGenBits(genBits) cannot be used; NewPool panics on it in
builds with -tags sxdebug and does not check it otherwise.
*/
package handle
