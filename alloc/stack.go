// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"code.hybscloud.com/sx/internal/assert"
)

type stackHdr struct {
	size         uintptr
	internalSize uintptr
	prevOffset   uintptr
}

// Stack is a LIFO allocator over a fixed-size arena: allocations are freed
// in exactly the reverse order they were made, like automatic storage on a
// call stack. Freeing out of order is a programmer error; in builds with
// assertions enabled (internal/assert, built with -tags sxdebug) it panics
// rather than silently corrupting the arena.
//
// Not safe for concurrent use.
type Stack struct {
	buf        []byte
	base       uintptr
	offset     uintptr
	lastPtrOff uintptr
	peak       uintptr
}

// NewStack reserves an arena of size bytes and returns a Stack allocator
// over it.
func NewStack(size uintptr) *Stack {
	buf := make([]byte, size)
	return &Stack{buf: buf, base: uintptr(unsafe.Pointer(unsafe.SliceData(buf)))}
}

// Reset rewinds the arena to empty, regardless of outstanding allocations.
func (s *Stack) Reset() {
	s.lastPtrOff = 0
	s.offset = 0
}

// Peak returns the high-water mark of bytes used since the last Reset.
func (s *Stack) Peak() uintptr { return s.peak }

// Size returns the arena's total capacity in bytes.
func (s *Stack) Size() uintptr { return uintptr(len(s.buf)) }

func (s *Stack) alloc(size, align uintptr) unsafe.Pointer {
	align = maxAlign(align)
	hdrSize := unsafe.Sizeof(stackHdr{})
	raw := s.base + s.offset
	aligned := alignUp(raw+hdrSize, align)
	total := aligned - raw + size
	if s.offset+total > uintptr(len(s.buf)) {
		return nil
	}

	hdr := (*stackHdr)(unsafe.Pointer(aligned - hdrSize))
	hdr.size = size
	hdr.internalSize = total
	hdr.prevOffset = s.lastPtrOff

	s.offset += total
	if s.offset > s.peak {
		s.peak = s.offset
	}
	s.lastPtrOff = aligned - s.base
	return unsafe.Pointer(aligned)
}

// Call implements Allocator.
func (s *Stack) Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer {
	lastPtr := unsafe.Pointer(s.base + s.lastPtrOff)

	if size > 0 {
		switch {
		case ptr == nil:
			p := s.alloc(size, align)
			if p == nil {
				reportOOM(site, size, align)
			}
			return p
		case ptr == lastPtr:
			newOffset := s.lastPtrOff + size
			if newOffset > uintptr(len(s.buf)) {
				reportOOM(site, size, align)
				return nil
			}
			hdr := (*stackHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(stackHdr{}))))
			hdr.internalSize = hdr.internalSize + newOffset - s.offset
			hdr.size = size
			s.offset = newOffset
			if s.offset > s.peak {
				s.peak = s.offset
			}
			return ptr
		default:
			hdr := (*stackHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(stackHdr{}))))
			newPtr := s.alloc(size, align)
			if newPtr == nil {
				reportOOM(site, size, align)
				return nil
			}
			n := hdr.size
			if size < n {
				n = size
			}
			copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
			return newPtr
		}
	}

	if ptr == nil {
		return nil
	}
	assert.That(s.offset > 0, "stack allocator: free on empty stack")
	if ptr == lastPtr {
		hdr := (*stackHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(stackHdr{}))))
		s.offset -= hdr.internalSize
		s.lastPtrOff = hdr.prevOffset
		return nil
	}
	// ptr is not the most recent allocation: out-of-order free.
	assert.That(false, "stack allocator: free out of LIFO order")
	return nil
}
