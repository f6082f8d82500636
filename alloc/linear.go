// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import "unsafe"

type linearHdr struct {
	size uintptr
}

// Linear is a bump-pointer allocator over a fixed-size backing arena. Free
// is a no-op by design: the whole arena is released at once via Reset. The
// one exception is a realloc of the most recent allocation, which grows (or
// shrinks) in place without moving, matching sx_linalloc's fast path.
//
// Not safe for concurrent use.
type Linear struct {
	buf        []byte
	base       uintptr
	offset     uintptr
	lastPtrOff uintptr
	peak       uintptr
}

// NewLinear reserves an arena of size bytes and returns a Linear allocator
// over it.
func NewLinear(size uintptr) *Linear {
	return newLinearOver(make([]byte, size))
}

func newLinearOver(buf []byte) *Linear {
	return &Linear{buf: buf, base: uintptr(unsafe.Pointer(unsafe.SliceData(buf)))}
}

// Reset rewinds the arena to empty. Previously returned pointers become
// invalid; the caller is responsible for not touching them afterward.
func (l *Linear) Reset() {
	l.lastPtrOff = 0
	l.offset = 0
}

// Peak returns the high-water mark of bytes used since the last Reset.
func (l *Linear) Peak() uintptr { return l.peak }

// Size returns the arena's total capacity in bytes.
func (l *Linear) Size() uintptr { return uintptr(len(l.buf)) }

func (l *Linear) alloc(size, align uintptr) unsafe.Pointer {
	align = maxAlign(align)
	hdrSize := unsafe.Sizeof(linearHdr{})
	newOffset := alignUp(l.base+l.offset+hdrSize, align) - l.base
	if newOffset+size > uintptr(len(l.buf)) {
		return nil
	}

	aligned := unsafe.Pointer(l.base + newOffset)
	hdr := (*linearHdr)(unsafe.Add(aligned, -int(hdrSize)))
	hdr.size = size

	l.offset = newOffset + size
	if l.offset > l.peak {
		l.peak = l.offset
	}
	l.lastPtrOff = newOffset
	return aligned
}

// Call implements Allocator.
func (l *Linear) Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer {
	if size == 0 {
		// No per-allocation free: the arena is reclaimed as a whole via Reset.
		return nil
	}

	lastPtr := unsafe.Pointer(l.base + l.lastPtrOff)
	switch {
	case ptr == nil:
		p := l.alloc(size, align)
		if p == nil {
			reportOOM(site, size, align)
		}
		return p
	case ptr == lastPtr:
		// In-place grow/shrink of the most recent allocation: the arena is
		// contiguous so no copy is needed.
		newOffset := l.lastPtrOff + size
		if newOffset > uintptr(len(l.buf)) {
			reportOOM(site, size, align)
			return nil
		}
		hdr := (*linearHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(linearHdr{}))))
		hdr.size = size
		l.offset = newOffset
		if l.offset > l.peak {
			l.peak = l.offset
		}
		return ptr
	default:
		hdr := (*linearHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(linearHdr{}))))
		newPtr := l.alloc(size, align)
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

// GrowableLinear is a Linear allocator backed by a linked list of bins
// drawn from an upstream Allocator, instead of one fixed-size arena. Only
// the newest bin ever bump-allocates; once replaced, a bin is retired and
// never allocated from again, but stays reachable (and its pointers valid)
// until Reset or Close releases it back to upstream.
//
// Not safe for concurrent use.
type GrowableLinear struct {
	upstream Allocator
	binSize  uintptr
	arenas   []*Linear
}

// NewGrowableLinear starts with one bin of binSize bytes drawn from
// upstream. Each time the current bin is exhausted, a new bin is drawn
// from upstream and appended: binSize bytes, or enough for the request
// plus its header and alignment padding if that is larger.
func NewGrowableLinear(upstream Allocator, binSize int) *GrowableLinear {
	g := &GrowableLinear{upstream: upstream, binSize: uintptr(binSize)}
	first := g.newBin(g.binSize)
	if first == nil {
		reportOOM(callerSite(1), g.binSize, NaturalAlignment)
	}
	g.arenas = []*Linear{first}
	return g
}

func (g *GrowableLinear) newBin(size uintptr) *Linear {
	ptr := Alloc(g.upstream, size, NaturalAlignment)
	if ptr == nil {
		return nil
	}
	return newLinearOver(unsafe.Slice((*byte)(ptr), size))
}

// Reset releases every bin but the first back to upstream, then rewinds
// the first to empty.
func (g *GrowableLinear) Reset() {
	for _, a := range g.arenas[1:] {
		Free(g.upstream, unsafe.Pointer(a.base))
	}
	g.arenas[0].Reset()
	g.arenas = g.arenas[:1]
}

// Close releases every bin, including the first, back to upstream. The
// GrowableLinear must not be used afterward.
func (g *GrowableLinear) Close() {
	for _, a := range g.arenas {
		Free(g.upstream, unsafe.Pointer(a.base))
	}
	g.arenas = nil
}

// ArenaCount reports how many backing bins are currently held.
func (g *GrowableLinear) ArenaCount() int { return len(g.arenas) }

func (g *GrowableLinear) current() *Linear { return g.arenas[len(g.arenas)-1] }

// Call implements Allocator.
func (g *GrowableLinear) Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	if ptr == nil {
		if p := g.current().alloc(size, align); p != nil {
			return p
		}
		// The bin must also hold the block's header and alignment padding.
		binSize := g.binSize
		if need := size + unsafe.Sizeof(linearHdr{}) + align; need > binSize {
			binSize = need
		}
		next := g.newBin(binSize)
		if next == nil {
			reportOOM(site, size, align)
			return nil
		}
		g.arenas = append(g.arenas, next)
		p := next.alloc(size, align)
		if p == nil {
			reportOOM(site, size, align)
		}
		return p
	}
	// Realloc only ever fast-paths within whichever arena currently owns
	// ptr; a cross-arena realloc falls back to copy-through.
	for _, a := range g.arenas {
		if ptr == unsafe.Pointer(a.base+a.lastPtrOff) {
			if a.lastPtrOff+size <= uintptr(len(a.buf)) {
				return a.Call(ptr, size, align, site)
			}
			break
		}
	}
	newPtr := g.Call(nil, size, align, site)
	if newPtr == nil {
		return nil
	}
	for _, a := range g.arenas {
		if uintptr(ptr) >= a.base && uintptr(ptr) < a.base+uintptr(len(a.buf)) {
			hdr := (*linearHdr)(unsafe.Add(ptr, -int(unsafe.Sizeof(linearHdr{}))))
			n := hdr.size
			if size < n {
				n = size
			}
			copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
			break
		}
	}
	return newPtr
}
