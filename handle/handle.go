// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handle

// Handle is an opaque 32-bit reference packing a generation counter and a
// slot identity. The split between the two is chosen per Pool (see
// NewPool's genBits parameter), so a raw Handle can only be decoded by the
// Pool that issued it. The zero Handle is never issued by a Pool.
type Handle uint32

// Invalid is the handle value a Pool never returns from New.
const Invalid Handle = 0

// DefaultGenBits is the generation width NewPool documents as a sensible
// default: wide enough that a stale handle is vanishingly unlikely to
// alias a live one, without eating so much of the 32 bits that capacity
// suffers.
const DefaultGenBits = 14

// MaxCapacityForGenBits returns how many slot indices a Handle with the
// given genBits can encode, 1<<(32-genBits). NewPool and Grow accept only
// capacities strictly below it.
func MaxCapacityForGenBits(genBits int) int {
	return 1 << (32 - genBits)
}

func maskFor(genBits int) (indexBits, indexMask, genMask uint32) {
	indexBits = uint32(32 - genBits)
	indexMask = (1 << indexBits) - 1
	genMask = (1 << uint32(genBits)) - 1
	return
}
