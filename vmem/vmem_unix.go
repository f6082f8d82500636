// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func osPageSize() int {
	return unix.Getpagesize()
}

type posixContext struct {
	base unsafe.Pointer
	size int // total reserved bytes
}

func platformReserve(flags Flags, pageSize, maxPages int) (platformContext, error) {
	total := pageSize * maxPages
	data, err := unix.Mmap(-1, 0, total, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("vmem: mmap reserve: %w", err)
	}
	return &posixContext{base: unsafe.Pointer(unsafe.SliceData(data)), size: total}, nil
}

func (c *posixContext) slice(total int) []byte {
	return unsafe.Slice((*byte)(c.base), total)
}

func (c *posixContext) release() error {
	if c.base == nil {
		return nil
	}
	err := unix.Munmap(c.slice(c.size))
	c.base = nil
	return err
}

func (c *posixContext) page(pageID, pageSize int) []byte {
	return c.slice(c.size)[pageID*pageSize : pageID*pageSize+pageSize]
}

func (c *posixContext) commit(startPageID, numPages, pageSize int) []byte {
	off := startPageID * pageSize
	n := numPages * pageSize
	region := c.slice(c.size)[off : off+n]
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return nil
	}
	return region
}

func (c *posixContext) decommit(startPageID, numPages, pageSize int) {
	off := startPageID * pageSize
	n := numPages * pageSize
	region := c.slice(c.size)[off : off+n]
	_ = unix.Madvise(region, unix.MADV_DONTNEED)
	_ = unix.Mprotect(region, unix.PROT_NONE)
}

// Write-watch has no POSIX equivalent; report empty rather than fail, the
// same trade-off the original library's POSIX branch makes.
func (c *posixContext) watchWrites(numPages, pageSize int, clear bool) WatchResult {
	return WatchResult{}
}

func (c *posixContext) watchClear(numPages, pageSize int) {}
