// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"code.hybscloud.com/sx/vmem"
)

type virtualHdr struct {
	size    uintptr
	padding uintptr
}

// Virtual is an arena allocator backed directly by committed virtual
// memory pages rather than the Go heap: each allocation rounds up to a
// whole number of pages and commits them fresh, so the resulting memory
// is never scanned or moved by the garbage collector. There is no
// sub-page reuse; Free decommits the pages outright. Suitable for large,
// long-lived, or off-heap-sensitive allocations.
//
// Not safe for concurrent use.
type Virtual struct {
	ctx    *vmem.Context
	offset uintptr
}

// NewVirtual reserves reserveSize bytes (rounded up to whole pages) of
// address space, committing pages lazily as allocations are made.
func NewVirtual(reserveSize uintptr) (*Virtual, error) {
	pages := vmem.PagesNeeded(reserveSize)
	if pages == 0 {
		pages = 1
	}
	ctx, err := vmem.Reserve(0, pages)
	if err != nil {
		return nil, err
	}
	return &Virtual{ctx: ctx}, nil
}

// Release returns the entire reservation to the OS. The Virtual must not
// be used afterward.
func (v *Virtual) Release() error { return v.ctx.Release() }

func (v *Virtual) pageBase() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(v.ctx.Page(0)))
}

func (v *Virtual) malloc(size, align uintptr, site CallSite) unsafe.Pointer {
	align = maxAlign(align)
	hdrSize := unsafe.Sizeof(virtualHdr{})
	total := size + hdrSize + align
	pages := vmem.PagesNeeded(total)
	startPage := vmem.PagesNeeded(v.offset)

	committed := v.ctx.CommitRange(startPage, pages)
	if committed == nil {
		reportOOM(site, size, align)
		return nil
	}

	raw := unsafe.Pointer(unsafe.SliceData(committed))
	aligned := alignUp(uintptr(raw)+hdrSize, align)
	hdr := (*virtualHdr)(unsafe.Pointer(aligned - hdrSize))
	hdr.size = uintptr(pages) * uintptr(v.ctx.PageSize())
	hdr.padding = aligned - uintptr(raw)

	v.offset = uintptr(startPage+pages) * uintptr(v.ctx.PageSize())
	return unsafe.Pointer(aligned)
}

// Call implements Allocator.
func (v *Virtual) Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer {
	if size == 0 {
		if ptr != nil {
			v.free(ptr)
		}
		return nil
	}
	if ptr == nil {
		return v.malloc(size, align, site)
	}

	newPtr := v.malloc(size, align, site)
	if newPtr == nil {
		return nil
	}
	oldHdr := (*virtualHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(virtualHdr{}))))
	n := size
	avail := oldHdr.size - oldHdr.padding
	if avail < n {
		n = avail
	}
	copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
	v.free(ptr)
	return newPtr
}

func (v *Virtual) free(ptr unsafe.Pointer) {
	hdr := (*virtualHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(virtualHdr{}))))
	oldPtr := unsafe.Add(ptr, -int(hdr.padding))
	base := uintptr(v.pageBase())
	startPage := int((uintptr(oldPtr) - base) / uintptr(v.ctx.PageSize()))
	numPages := int(hdr.size / uintptr(v.ctx.PageSize()))
	v.ctx.DecommitRange(startPage, numPages)
}
