// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package alloc provides a pluggable allocator abstraction plus four
// concrete allocators: a malloc wrapper, a linear (bump) allocator, a
// stack (LIFO) allocator, and a virtual-memory reserve/commit allocator.
//
// # Quick Start
//
//	lin := alloc.NewLinear(64 * 1024) // allocates its own 64 KiB arena
//	p := alloc.Alloc(lin, 16, 8)
//	p = alloc.Realloc(lin, p, 32, 8) // extends in place, p unchanged
//	lin.Reset()                      // rewind for the next frame
//
// # Allocator Contract
//
// An [Allocator] is a single dispatch callback, matching the C convention
// this package's design is ported from:
//
//	size == 0            -> free ptr (no-op if ptr is nil), returns nil
//	ptr == nil, size > 0  -> allocate >= size bytes aligned to align, or nil on exhaustion
//	ptr != nil, size > 0  -> resize, preserving min(old, new) bytes, may move
//
// Alignment requests below the natural floor (8 bytes, 16 on arm64) are
// silently raised to the floor. Callers must not change alignment across
// reallocs of the same live pointer.
//
// # Allocators
//
//	Malloc         - wraps the Go heap
//	LeakTracker    - wraps any Allocator, tracks live allocations for DumpLeaks
//	Linear         - bump allocator over an arena it allocates itself (no caller-supplied buffer), no individual free
//	GrowableLinear - linked bins of Linear, grows from an upstream Allocator
//	Stack          - bump allocator with LIFO free discipline
//	Virtual        - commits pages on demand from a reserved address range
//
// None of these are thread-safe except Malloc, which inherits the Go
// runtime allocator's own serialization, and LeakTracker, which guards its
// bookkeeping with a mutex and is thread-safe whenever its upstream is.
// Concurrent callers of the others must synchronize externally.
package alloc
