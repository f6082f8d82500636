// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"
)

// Malloc wraps the Go heap, matching the behavior of a general-purpose
// malloc/realloc/free triple. Over-aligned requests are satisfied by
// over-allocating and rounding up, the same technique an aligned_alloc
// fallback uses. Thread-safe: it inherits the Go runtime allocator's own
// serialization.
type Malloc struct{}

// NewMalloc returns the default heap-backed Allocator.
func NewMalloc() *Malloc { return &Malloc{} }

type mallocHdr struct {
	raw   unsafe.Pointer // keeps the oversized backing slice reachable
	size  uintptr
	align uintptr
}

func mallocAllocate(size, align uintptr, site CallSite) unsafe.Pointer {
	// The plain layout puts the pointer right after the header, so it is
	// only aligned when the header size is a multiple of align.
	if align <= NaturalAlignment && unsafe.Sizeof(mallocHdr{})%align == 0 {
		buf := make([]byte, size+unsafe.Sizeof(mallocHdr{}))
		raw := unsafe.Pointer(unsafe.SliceData(buf))
		hdr := (*mallocHdr)(raw)
		*hdr = mallocHdr{raw: raw, size: size, align: align}
		ptr := unsafe.Add(raw, unsafe.Sizeof(mallocHdr{}))
		if ptr == nil {
			reportOOM(site, size, align)
		}
		return ptr
	}

	// Over-aligned: allocate enough slack to carve an aligned pointer,
	// stash the header immediately before it.
	total := size + align + unsafe.Sizeof(mallocHdr{})
	buf := make([]byte, total)
	raw := unsafe.Pointer(unsafe.SliceData(buf))
	base := uintptr(raw) + unsafe.Sizeof(mallocHdr{})
	aligned := alignUp(base, align)
	hdrPtr := (*mallocHdr)(unsafe.Pointer(aligned - unsafe.Sizeof(mallocHdr{})))
	*hdrPtr = mallocHdr{raw: raw, size: size, align: align}
	return unsafe.Pointer(aligned)
}

func mallocHeader(ptr unsafe.Pointer) *mallocHdr {
	return (*mallocHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(mallocHdr{}))))
}

// Call implements Allocator.
func (m *Malloc) Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer {
	switch {
	case size == 0:
		// Go is garbage collected: "free" just drops the reference so the
		// backing array can be collected once unreachable.
		return nil
	case ptr == nil:
		return mallocAllocate(size, align, site)
	default:
		old := mallocHeader(ptr)
		newPtr := mallocAllocate(size, align, site)
		if newPtr == nil {
			return nil
		}
		n := old.size
		if size < n {
			n = size
		}
		copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
		return newPtr
	}
}
