// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import (
	"fmt"
	"sync"
	"unsafe"
)

// LeakRecord describes one still-live allocation at the time DumpLeaks is
// called.
type LeakRecord struct {
	Site CallSite
	Size uintptr
	Ptr  uintptr
}

// LeakTracker wraps an upstream Allocator and records every live
// allocation in a map keyed by its address; unlike the stb_leakcheck
// technique of the C allocator, it places no header in front of the
// block. Call DumpLeaks at shutdown to inspect anything still
// outstanding, and FormatLeak to render a record as a report line.
// Thread-safe as long as upstream is.
type LeakTracker struct {
	upstream Allocator

	mu   sync.Mutex
	live map[uintptr]LeakRecord
}

// NewLeakTracker wraps upstream with live-allocation tracking.
func NewLeakTracker(upstream Allocator) *LeakTracker {
	return &LeakTracker{upstream: upstream, live: make(map[uintptr]LeakRecord)}
}

// Call implements Allocator.
func (lt *LeakTracker) Call(ptr unsafe.Pointer, size, align uintptr, site CallSite) unsafe.Pointer {
	result := lt.upstream.Call(ptr, size, align, site)

	lt.mu.Lock()
	defer lt.mu.Unlock()

	switch {
	case size == 0:
		if ptr != nil {
			delete(lt.live, uintptr(ptr))
		}
	case ptr == nil:
		if result != nil {
			lt.live[uintptr(result)] = LeakRecord{Site: site, Size: size, Ptr: uintptr(result)}
		}
	default:
		if result != nil {
			delete(lt.live, uintptr(ptr))
			lt.live[uintptr(result)] = LeakRecord{Site: site, Size: size, Ptr: uintptr(result)}
		}
	}
	return result
}

// DumpLeaks returns every allocation still outstanding, in no particular
// order. It prints nothing itself.
func (lt *LeakTracker) DumpLeaks() []LeakRecord {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	out := make([]LeakRecord, 0, len(lt.live))
	for _, rec := range lt.live {
		out = append(out, rec)
	}
	return out
}

// FormatLeak renders a LeakRecord the way the original stb_leakcheck
// report lines read: "LEAKED: file (line): N bytes at 0xADDR".
func FormatLeak(r LeakRecord) string {
	return fmt.Sprintf("LEAKED: %s (%d): %d bytes at 0x%x", r.Site.File, r.Site.Line, r.Size, r.Ptr)
}
