// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package jobs implements a fiber-based job system: a fixed pool of worker
goroutines pulls work from one sx/lfq.MPMC ready queue per Priority and
executes each job on its own sx/fiber.Fiber, so a job can suspend itself
mid-execution to wait on jobs it dispatched without blocking the worker
underneath it.

# Quick start

	sys := jobs.NewSystem(4, 256, 64, 64*1024)
	defer sys.Close()

	main := sys.MainThreadData()
	counter := main.Dispatch([]jobs.Descriptor{
		{Priority: jobs.Normal, Callback: func(jc *jobs.JobContext) {
			fmt.Println("hello from a job")
		}},
	})
	main.WaitAndDelete(counter)

A job's Callback receives a *JobContext instead of a *ThreadData: the two
types expose the same Dispatch/WaitAndDelete/TryDelete surface, but only
JobContext can suspend the calling fiber (a plain ThreadData, used by the
goroutine that owns the System or by a worker between jobs, has no fiber
of its own to yield).

# Dependency chaining

Dispatching from inside a running job automatically makes that job wait
on the new batch: the parent job's internal wait counter is set to the
child batch's Counter, so the scheduler will not pick the parent again
until every child has finished. This is how a recursive job (e.g. a
divide-and-conquer Fibonacci job) fans out work and later collects it
with WaitAndDelete, without the parent ever blocking its worker thread.

# Thread affinity

WaitAndDelete on a job that hasn't finished enqueues the waiting job into
an sx/lfq.SPSC resume slot private to the calling worker, mirroring the
"slave" mode of the original C job system: once a job starts waiting on
its own worker, only that worker's selector loop ever dequeues it again,
so a job's fiber always resumes on a consistent call stack. The ready
queues stay pure FIFOs because a job only ever occupies a resume slot
while it is itself suspended, never while sitting in a ready queue.
*/
package jobs
