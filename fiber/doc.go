// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package fiber implements a symmetric-switch coroutine: two sides hand
control back and forth, each blocking until the other switches back, with
neither side polling or being preempted by the scheduler in between.

The original library builds this on per-ABI hand-written assembly
(make_fcontext/jump_fcontext) that swaps the CPU's stack pointer and
callee-saved registers directly. Go gives user code no access to its own
goroutine stacks, so this package reaches the same contract -
exactly one side runs at a time, switching is a rendezvous, not a
signal - with a dedicated goroutine per Fiber and an unbuffered channel
handoff in each direction. The goroutine scheduler, not hand-written
assembly, performs the actual context switch; the cost is a channel send
and a runtime reschedule rather than a handful of register moves, higher
per-switch but asymptotically the same O(1) shape the original promises.

# Quick start

	f := fiber.Create(func(f *fiber.Fiber, user any) {
		n := user.(int)
		for i := 0; i < 3; i++ {
			n = f.Yield(n + 1).(int)
		}
	})
	t := fiber.Switch(f, 0)
	for !t.Finished {
		t = fiber.Switch(f, t.User)
	}

A Fiber's goroutine blocks forever on its next resume if the fiber never
returns and nothing switches into it again; exactly the same leak a
native fiber's un-freed stack represents. Callers own cleanup by making
sure every created Fiber either finishes or keeps getting switched into.
*/
package fiber
