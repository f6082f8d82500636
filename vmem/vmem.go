// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vmem manages a reserved virtual address range as a fixed grid of
// OS pages, committing and decommitting individual pages (or contiguous
// runs) on demand. The reservation never moves, so pointers handed out by
// Commit stay valid for the page's entire committed lifetime: callers can
// build growable structures (stacks, arenas, ring buffers) that never
// realloc, only commit further pages of an address range fixed up front.
//
// Platform backends live in vmem_unix.go (mmap/mprotect/madvise) and
// vmem_windows.go (VirtualAlloc/VirtualFree), selected by build tag.
package vmem

import "code.hybscloud.com/sx/internal/assert"

// Flags configures Reserve.
type Flags uint32

const (
	// Watch requests write-tracking on the reservation where the host OS
	// supports it (Windows GetWriteWatch/ResetWriteWatch). A no-op on
	// platforms without native support; Watch then always reports empty.
	Watch Flags = 1 << iota
)

// Context is a reserved virtual address range sliced into equal-size
// pages, committed and decommitted a page (or a contiguous run) at a time.
// Not safe for concurrent use without external synchronization.
type Context struct {
	impl     platformContext
	pageSize int
	numPages int
	maxPages int
}

// WatchResult reports which pages were written to since the reservation
// began (or since the last clear), on platforms with native write-watch
// support.
type WatchResult struct {
	PageIDs []int
}

// PageSize returns the host's page size in bytes, as reported by the OS.
func PageSize() int { return osPageSize() }

// BytesForPages returns numPages * the host page size.
func BytesForPages(numPages int) uintptr {
	return uintptr(numPages) * uintptr(osPageSize())
}

// PagesNeeded returns how many pages are required to cover n bytes,
// rounding up.
func PagesNeeded(n uintptr) int {
	ps := uintptr(osPageSize())
	return int((n + ps - 1) / ps)
}

// Reserve reserves (but does not commit) address space for maxPages
// pages. The range is PROT_NONE/no-access until individual pages are
// committed with Commit or CommitRange.
func Reserve(flags Flags, maxPages int) (*Context, error) {
	assert.That(maxPages > 0, "vmem: maxPages must be positive")
	ps := osPageSize()
	impl, err := platformReserve(flags, ps, maxPages)
	if err != nil {
		return nil, err
	}
	return &Context{impl: impl, pageSize: ps, maxPages: maxPages}, nil
}

// Release unmaps the entire reservation. The Context must not be used
// afterward.
func (c *Context) Release() error {
	err := c.impl.release()
	c.numPages, c.maxPages = 0, 0
	return err
}

// PageSize returns the page size this Context was reserved with.
func (c *Context) PageSize() int { return c.pageSize }

// NumPages reports how many pages are currently committed.
func (c *Context) NumPages() int { return c.numPages }

// MaxPages reports the reservation's total page capacity.
func (c *Context) MaxPages() int { return c.maxPages }

// Page returns a pointer to the start of pageID, whether or not it is
// currently committed.
func (c *Context) Page(pageID int) []byte {
	assert.That(pageID < c.maxPages, "vmem: page id out of range")
	return c.impl.page(pageID, c.pageSize)
}

// Commit commits pageID for read/write access and returns its backing
// slice. Returns nil if pageID is out of range or the reservation is
// already fully committed.
func (c *Context) Commit(pageID int) []byte {
	if pageID >= c.maxPages || c.numPages == c.maxPages {
		return nil
	}
	buf := c.impl.commit(pageID, 1, c.pageSize)
	if buf == nil {
		return nil
	}
	c.numPages++
	return buf
}

// CommitRange commits numPages pages starting at startPageID as a single
// contiguous run, returning the backing slice for the whole run.
func (c *Context) CommitRange(startPageID, numPages int) []byte {
	if startPageID+numPages > c.maxPages || c.numPages+numPages > c.maxPages {
		return nil
	}
	buf := c.impl.commit(startPageID, numPages, c.pageSize)
	if buf == nil {
		return nil
	}
	c.numPages += numPages
	return buf
}

// Decommit releases pageID's backing memory; its contents become
// undefined and it must be re-committed before use.
func (c *Context) Decommit(pageID int) {
	assert.That(pageID < c.maxPages, "vmem: page id out of range")
	assert.That(c.numPages > 0, "vmem: decommit with nothing committed")
	c.impl.decommit(pageID, 1, c.pageSize)
	c.numPages--
}

// DecommitRange releases numPages pages starting at startPageID.
func (c *Context) DecommitRange(startPageID, numPages int) {
	if numPages == 0 {
		return
	}
	assert.That(startPageID+numPages <= c.maxPages, "vmem: page range out of bounds")
	assert.That(c.numPages >= numPages, "vmem: decommit count exceeds committed pages")
	c.impl.decommit(startPageID, numPages, c.pageSize)
	c.numPages -= numPages
}

// CommittedBytes returns pageSize * NumPages.
func (c *Context) CommittedBytes() uintptr {
	return uintptr(c.pageSize) * uintptr(c.numPages)
}

// WatchWrites reports which of the committed pages have been written to
// since reservation (or the last WatchClear), on platforms with native
// write-watch support. Returns a zero-value WatchResult elsewhere.
func (c *Context) WatchWrites(clear bool) WatchResult {
	return c.impl.watchWrites(c.numPages, c.pageSize, clear)
}

// WatchClear resets the write-watch bits for the committed range.
func (c *Context) WatchClear() {
	c.impl.watchClear(c.numPages, c.pageSize)
}
