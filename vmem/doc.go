// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package vmem exposes the page-grained virtual memory primitive that the
higher-level allocators in sx/alloc build on.

# Quick start

	ctx, err := vmem.Reserve(0, 1024) // reserve 1024 pages, none committed
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Release()

	buf := ctx.Commit(0) // commit page 0, get back its backing slice
	buf[0] = 0xFF
	ctx.Decommit(0)      // buf must not be touched again

# Why reserve separately from commit

Reserving address space up front and committing pages lazily lets a data
structure grow without ever moving: every pointer handed out by Commit
stays valid as long as that page stays committed, even while sibling pages
are committed or decommitted around it. This is the same trick virtual
memory-backed growable arrays and ring buffers use to avoid a realloc-and-
copy on growth.
*/
package vmem
