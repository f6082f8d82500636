// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vmem

// platformContext is the per-OS backend a Context drives. Implemented by
// vmem_unix.go (mmap/mprotect/madvise) and vmem_windows.go
// (VirtualAlloc/VirtualFree/GetWriteWatch).
type platformContext interface {
	release() error
	page(pageID, pageSize int) []byte
	commit(startPageID, numPages, pageSize int) []byte
	decommit(startPageID, numPages, pageSize int)
	watchWrites(numPages, pageSize int, clear bool) WatchResult
	watchClear(numPages, pageSize int)
}
