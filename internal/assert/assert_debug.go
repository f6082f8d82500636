// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build sxdebug

// Package assert provides a build-tag-gated invariant check shared across
// the sx packages, mirroring the sx_assert/sx_assert_rel split in the
// original C library: present and panicking under -tags sxdebug, compiled
// out entirely otherwise.
package assert

// That panics with msg when cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// Enabled reports whether debug assertions are compiled in.
const Enabled = true
