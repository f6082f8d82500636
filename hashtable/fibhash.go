// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hashtable

const (
	emptyKey     uint32 = 0
	tombstoneKey uint32 = 0xFFFFFFFF
)

const fibMul uint64 = 11400714819323198485

func fibHash(h uint32, bitshift int) uint32 {
	h64 := uint64(h)
	h64 ^= h64 >> uint(bitshift)
	return uint32((h64 * fibMul) >> uint(bitshift))
}

func calcBitshift(n int) int {
	c := 0
	un := uint32(n)
	for un > 1 {
		c++
		un >>= 1
	}
	return 64 - c
}

func nearestPow2(n int) int {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}
