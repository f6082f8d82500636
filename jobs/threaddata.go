// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import "code.hybscloud.com/sx/fiber"

// ThreadData identifies a caller of Dispatch/WaitAndDelete/TryDelete that
// is not itself running inside a job fiber: the goroutine that owns a
// System, or a worker goroutine in between jobs. The original C job
// system found this per-thread state through thread-local storage; Go
// has no public TLS primitive, so callers hold and pass their
// ThreadData explicitly instead.
type ThreadData struct {
	sys    *System
	tid    uint64
	isMain bool
}

// Dispatch pushes descs onto their priority run lists and returns a
// Counter that reaches zero once all of them have finished. Called from
// outside any job, the new batch has no parent to wait on it.
func (td *ThreadData) Dispatch(descs []Descriptor) *Counter {
	return td.sys.dispatch(nil, descs)
}

// WaitAndDelete blocks until c reaches zero, then releases it. Since td
// has no fiber of its own to suspend, waiting here means actively
// running other jobs from the list until c's batch completes.
func (td *ThreadData) WaitAndDelete(c *Counter) {
	td.sys.waitOutsideJob(td, c)
}

// TryDelete releases c and returns true if its batch has already
// finished, or returns false without doing anything otherwise.
func (td *ThreadData) TryDelete(c *Counter) bool {
	return td.sys.tryDelete(c)
}

// JobContext is handed to a running job's Callback. It behaves like a
// ThreadData but can additionally suspend the job's own fiber, so
// WaitAndDelete here yields the worker to run other jobs instead of
// busy-looping this one.
type JobContext struct {
	sys *System
	job *job
	f   *fiber.Fiber
	td  *ThreadData // whichever worker is currently running this job
}

// Dispatch pushes descs onto their priority run lists and returns a
// Counter. The calling job is recorded as depending on the new batch, so
// the scheduler will not resume it again until the batch finishes.
func (jc *JobContext) Dispatch(descs []Descriptor) *Counter {
	return jc.sys.dispatch(jc.job, descs)
}

// WaitAndDelete suspends the calling job until c reaches zero, then
// releases it.
func (jc *JobContext) WaitAndDelete(c *Counter) {
	jc.sys.waitInsideJob(jc, c)
}

// TryDelete releases c and returns true if its batch has already
// finished, or returns false without doing anything otherwise.
func (jc *JobContext) TryDelete(c *Counter) bool {
	return jc.sys.tryDelete(c)
}
