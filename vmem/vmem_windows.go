// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osPageSize() int {
	var si windows.SystemInfo
	windows.GetSystemInfo(&si)
	return int(si.PageSize)
}

type winContext struct {
	base unsafe.Pointer
	size int
}

func platformReserve(flags Flags, pageSize, maxPages int) (platformContext, error) {
	total := uintptr(pageSize * maxPages)
	allocType := uint32(windows.MEM_RESERVE)
	if flags&Watch != 0 {
		allocType |= windows.MEM_WRITE_WATCH
	}
	addr, err := windows.VirtualAlloc(0, total, allocType, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("vmem: VirtualAlloc reserve: %w", err)
	}
	return &winContext{base: unsafe.Pointer(addr), size: int(total)}, nil
}

func (c *winContext) release() error {
	if c.base == nil {
		return nil
	}
	err := windows.VirtualFree(uintptr(c.base), 0, windows.MEM_RELEASE)
	c.base = nil
	return err
}

func (c *winContext) page(pageID, pageSize int) []byte {
	ptr := unsafe.Add(c.base, pageID*pageSize)
	return unsafe.Slice((*byte)(ptr), pageSize)
}

func (c *winContext) commit(startPageID, numPages, pageSize int) []byte {
	ptr := unsafe.Add(c.base, startPageID*pageSize)
	n := uintptr(numPages * pageSize)
	addr, err := windows.VirtualAlloc(uintptr(ptr), n, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), numPages*pageSize)
}

func (c *winContext) decommit(startPageID, numPages, pageSize int) {
	ptr := unsafe.Add(c.base, startPageID*pageSize)
	n := uintptr(numPages * pageSize)
	_ = windows.VirtualFree(uintptr(ptr), n, windows.MEM_DECOMMIT)
}

// kernel32.dll's GetWriteWatch/ResetWriteWatch have no high-level wrapper
// in x/sys/windows; call them the same way x/sys itself calls procedures
// without one, via a lazily-bound DLL handle.
var (
	modkernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procGetWriteWatch   = modkernel32.NewProc("GetWriteWatch")
	procResetWriteWatch = modkernel32.NewProc("ResetWriteWatch")
	writeWatchFlagReset = uintptr(0x1)
)

func (c *winContext) watchWrites(numPages, pageSize int, clear bool) WatchResult {
	if numPages == 0 {
		return WatchResult{}
	}
	var flags uintptr
	if clear {
		flags = writeWatchFlagReset
	}
	addrs := make([]uintptr, numPages)
	var count uintptr
	var granularity uint32
	r1, _, _ := procGetWriteWatch.Call(
		flags,
		uintptr(c.base),
		uintptr(numPages*pageSize),
		uintptr(unsafe.Pointer(&addrs[0])),
		uintptr(unsafe.Pointer(&count)),
		uintptr(unsafe.Pointer(&granularity)),
	)
	if r1 != 0 {
		return WatchResult{}
	}
	ids := make([]int, 0, count)
	for _, a := range addrs[:count] {
		ids = append(ids, int((a-uintptr(c.base))/uintptr(pageSize)))
	}
	return WatchResult{PageIDs: ids}
}

func (c *winContext) watchClear(numPages, pageSize int) {
	if numPages == 0 {
		return
	}
	procResetWriteWatch.Call(uintptr(c.base), uintptr(numPages*pageSize))
}
