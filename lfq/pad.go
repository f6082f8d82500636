// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// pad separates hot atomic fields onto their own cache lines so producer
// and consumer indices don't false-share.
type pad [64]byte

// padShort pads out a slot after its 8-byte cycle field to a full cache
// line, so adjacent slots in the ring don't false-share either.
type padShort [64 - 8]byte

// roundToPow2 rounds n up to the next power of 2; NewMPMC and NewSPSC
// both size their ring by this so index masking (i & (size-1)) replaces
// the modulo a non-power-of-2 ring would need.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
