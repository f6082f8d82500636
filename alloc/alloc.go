// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import (
	"runtime"
	"unsafe"
)

// NaturalAlignment is the alignment floor every allocator honors.
// 16 on arm64 (matches Apple's stricter malloc contract), 8 elsewhere.
const NaturalAlignment = naturalAlignment

// CallSite identifies the call site of an Alloc/Realloc/Free, carried
// through to OnOutOfMemory and leak-tracking headers.
type CallSite struct {
	File string
	Line int
}

// Allocator is a hand-rolled virtual call: one dispatch method standing in
// for malloc/realloc/free by convention on (ptr, size). Implementations
// are not thread-safe unless documented otherwise.
type Allocator interface {
	// Call dispatches:
	//   size == 0            -> free ptr, returns nil
	//   ptr == nil, size > 0  -> malloc, returns new block or nil on exhaustion
	//   ptr != nil, size > 0  -> realloc, returns resized block or nil (ptr still valid)
	Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer
}

// OnOutOfMemory is invoked whenever any allocator in this package returns
// nil for a non-zero-size request. The default is a no-op; override for
// logging. The failing call still returns nil regardless.
var OnOutOfMemory func(site CallSite, size, align uintptr) = func(CallSite, uintptr, uintptr) {}

func reportOOM(site CallSite, size, align uintptr) {
	if OnOutOfMemory != nil {
		OnOutOfMemory(site, size, align)
	}
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

func maxAlign(align uintptr) uintptr {
	if align < NaturalAlignment {
		return NaturalAlignment
	}
	return align
}

func callerSite(skip int) CallSite {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallSite{}
	}
	return CallSite{File: file, Line: line}
}

// Alloc requests a fresh block of at least size bytes from a, aligned to
// at least align (raised to the natural floor). Returns nil on exhaustion.
func Alloc(a Allocator, size, align uintptr) unsafe.Pointer {
	return a.Call(nil, size, maxAlign(align), callerSite(1))
}

// Realloc resizes the block at ptr to size bytes, preserving the leading
// min(old, new) bytes. Returns nil on exhaustion, leaving ptr valid.
func Realloc(a Allocator, ptr unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	return a.Call(ptr, size, maxAlign(align), callerSite(1))
}

// Free releases ptr. A no-op if ptr is nil.
func Free(a Allocator, ptr unsafe.Pointer) {
	a.Call(ptr, 0, NaturalAlignment, callerSite(1))
}
