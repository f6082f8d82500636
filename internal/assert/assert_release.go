// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !sxdebug

package assert

// That is a no-op in release builds (build without -tags sxdebug).
func That(cond bool, msg string) {}

// Enabled reports whether debug assertions are compiled in.
const Enabled = false
