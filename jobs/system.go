// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"runtime"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"code.hybscloud.com/sx/fiber"
	"code.hybscloud.com/sx/handle"
	"code.hybscloud.com/sx/internal/assert"
	"code.hybscloud.com/sx/lfq"
)

// minStackSize mirrors the minimum fiber stack the original library
// enforces on every platform it supports.
const minStackSize = 16 * 1024

// System owns a fixed pool of worker goroutines, one lock-free ready
// queue per Priority, and one resume slot per worker for jobs that
// suspended themselves waiting on a sub-batch. The zero System is not
// usable; construct with NewSystem.
type System struct {
	ready [numPriorities]*lfq.MPMC[*job]

	// pinned[tid-1] holds the jobs that last suspended while running on
	// worker tid, each still waiting on its own waitCounter. Only that
	// worker's selectStep ever dequeues from its own slot, so the SPSC
	// contract (one producer, one consumer, never concurrent with
	// themselves) holds even though the producer role is played by a
	// different job's fiber goroutine each time.
	pinned []*lfq.SPSC[*job]

	jobMu   sync.Mutex
	jobPool *handle.Pool[struct{}]

	counterMu   sync.Mutex
	counterPool *handle.Pool[struct{}]

	sem     chan struct{}
	quit    atomix.Bool
	nextTID atomix.Uint64

	numWorkers int
	wg         sync.WaitGroup

	stackSize int
	main      *ThreadData
}

// NewSystem starts workers worker goroutines and returns a System that
// can hold up to maxFibers in-flight jobs and maxCounters outstanding
// Dispatch batches at once. stackSize is validated for parity with the
// original library's fiber stack sizing but otherwise unused: goroutine
// stacks grow on demand, so a job fiber never needs a fixed-size arena.
func NewSystem(workers, maxCounters, maxFibers, stackSize int) *System {
	assert.That(workers >= 0, "jobs: workers must not be negative")
	assert.That(maxCounters > 0, "jobs: maxCounters must be positive")
	assert.That(maxFibers > 0, "jobs: maxFibers must be positive")
	assert.That(stackSize >= minStackSize, "jobs: stackSize too small")

	sys := &System{
		jobPool:     handle.NewPool[struct{}](maxFibers, handle.DefaultGenBits),
		counterPool: handle.NewPool[struct{}](maxCounters, handle.DefaultGenBits),
		sem:         make(chan struct{}, maxFibers+workers+1),
		pinned:      make([]*lfq.SPSC[*job], workers+1),
		numWorkers:  workers,
		stackSize:   stackSize,
	}
	for pr := range sys.ready {
		sys.ready[pr] = lfq.NewMPMC[*job](maxFibers)
	}
	for i := range sys.pinned {
		// Sized for the pathological case where every in-flight job ends
		// up pinned to the same worker (a worker that keeps picking up
		// its own descendants' jobs off the ready queue while already
		// waiting on one of their ancestors).
		sys.pinned[i] = lfq.NewSPSC[*job](maxFibers)
	}
	sys.main = &ThreadData{sys: sys, tid: sys.allocTID(), isMain: true}

	sys.wg.Add(workers)
	for i := 0; i < workers; i++ {
		td := &ThreadData{sys: sys, tid: sys.allocTID()}
		go sys.selectorLoop(td)
	}
	return sys
}

// MainThreadData returns the ThreadData for the goroutine that
// constructed sys. It is the entry point for dispatching work from
// outside any job.
func (sys *System) MainThreadData() *ThreadData { return sys.main }

func (sys *System) allocTID() uint64 {
	return sys.nextTID.AddAcqRel(1)
}

// Close signals every worker to finish its current job and exit, then
// waits for them to do so. Jobs still waiting in a ready queue when
// Close is called never run; draining the queues first lets any worker
// still mid-shutdown empty its own queue without blocking on the FAA
// threshold guard, which assumes producers keep arriving.
func (sys *System) Close() {
	sys.quit.StoreRelease(true)
	for pr := range sys.ready {
		sys.ready[pr].Drain()
	}
	for i := 0; i < sys.numWorkers+1; i++ {
		sys.sem <- struct{}{}
	}
	sys.wg.Wait()
}

func (sys *System) newJob(desc Descriptor, counter *Counter) *job {
	sys.jobMu.Lock()
	slot, ok := sys.jobPool.New(struct{}{})
	sys.jobMu.Unlock()
	assert.That(ok, "jobs: maximum in-flight jobs exceeded")

	j := &job{slot: slot, desc: desc, counter: counter}
	j.fiber = fiber.Create(func(f *fiber.Fiber, user any) {
		td := user.(*ThreadData)
		jc := &JobContext{sys: sys, job: j, f: f, td: td}
		desc.Callback(jc)
	})
	return j
}

func (sys *System) deleteJob(j *job) {
	sys.jobMu.Lock()
	sys.jobPool.Delete(j.slot)
	sys.jobMu.Unlock()
}

func (sys *System) dispatch(parent *job, descs []Descriptor) *Counter {
	assert.That(len(descs) > 0, "jobs: Dispatch requires at least one descriptor")

	sys.counterMu.Lock()
	slot, ok := sys.counterPool.New(struct{}{})
	sys.counterMu.Unlock()
	assert.That(ok, "jobs: maximum outstanding counters exceeded")

	c := &Counter{slot: slot}
	c.remaining.StoreRelease(int32(len(descs)))

	// Another job is running on this thread: it now depends on the new
	// batch, so the scheduler must not resume it until the batch drains.
	if parent != nil {
		parent.waitCounter = c
	}

	for _, d := range descs {
		j := sys.newJob(d, c)
		err := sys.ready[d.Priority].Enqueue(&j)
		assert.That(err == nil, "jobs: maximum in-flight jobs exceeded")
	}

	sys.wake(len(descs))
	return c
}

// wake posts n wake-up signals for idle workers. With no worker
// goroutines, nothing ever waits on sem, so posting would only grow the
// channel's backlog forever; skip it in that case.
func (sys *System) wake(n int) {
	if sys.numWorkers == 0 {
		return
	}
	for i := 0; i < n; i++ {
		sys.sem <- struct{}{}
	}
}

func (sys *System) deleteCounter(c *Counter) {
	assert.That(!c.deleted, "jobs: counter deleted twice")
	c.deleted = true
	sys.counterMu.Lock()
	sys.counterPool.Delete(c.slot)
	sys.counterMu.Unlock()
}

func (sys *System) tryDelete(c *Counter) bool {
	if !c.Done() {
		return false
	}
	sys.deleteCounter(c)
	return true
}

// pickPinned checks td's own resume slot for a job it previously
// suspended. A job whose dependency batch has not finished yet is put
// straight back: no one else can touch this slot, so the self-requeue
// cannot race or lose the job.
func (sys *System) pickPinned(td *ThreadData) (*job, bool) {
	slot := sys.pinned[td.tid-1]
	for {
		j, err := slot.Dequeue()
		if err != nil {
			return nil, false
		}
		if j.waitCounter.Done() {
			return j, true
		}
		must := slot.Enqueue(&j)
		assert.That(must == nil, "jobs: pinned resume slot overflowed")
		return nil, false
	}
}

// pickReady takes the first job, in priority then FIFO order, sitting
// in a ready queue.
func (sys *System) pickReady() (*job, bool) {
	for pr := range sys.ready {
		if j, err := sys.ready[pr].Dequeue(); err == nil {
			return j, true
		}
	}
	return nil, false
}

// selectStep runs at most one job to its next suspension point on td's
// behalf. It reports whether a job actually ran.
func (sys *System) selectStep(td *ThreadData) bool {
	j, ok := sys.pickPinned(td)
	if !ok {
		j, ok = sys.pickReady()
	}
	if !ok {
		spin.Wait{}.Once()
		return false
	}

	tr := fiber.Switch(j.fiber, td)
	if tr.Finished {
		j.counter.decrement()
		sys.deleteJob(j)
	}
	return true
}

// selectorLoop is the body every worker goroutine runs for its lifetime.
func (sys *System) selectorLoop(td *ThreadData) {
	defer sys.wg.Done()
	runtime.LockOSThread()

	for {
		<-sys.sem
		if sys.quit.LoadAcquire() {
			return
		}
		sys.selectStep(td)
	}
}

func (sys *System) waitOutsideJob(td *ThreadData, c *Counter) {
	sw := spin.Wait{}
	for !c.Done() {
		if sys.selectStep(td) {
			sw = spin.Wait{}
		} else {
			sw.Once()
		}
	}
	sys.deleteCounter(c)
}

func (sys *System) waitInsideJob(jc *JobContext, c *Counter) {
	for !c.Done() {
		// Pin this job to the worker currently running it, so only that
		// worker's selectStep resumes it again.
		err := sys.pinned[jc.td.tid-1].Enqueue(&jc.job)
		assert.That(err == nil, "jobs: maximum in-flight jobs exceeded")

		if !jc.td.isMain {
			sys.wake(1)
		}

		resumed := jc.f.Yield(nil)
		jc.td = resumed.(*ThreadData)
	}
	sys.deleteCounter(c)
}
