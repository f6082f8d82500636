// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"code.hybscloud.com/sx/fiber"
	"code.hybscloud.com/sx/handle"
	"code.hybscloud.com/sx/internal/assert"
)

// initialCapacity is how many concurrently-suspended tasks a fresh
// Scheduler can hold before its task pool needs to Grow.
const initialCapacity = 16

type retKind int

const (
	retPass retKind = iota
	retWait
)

type retValue struct {
	kind retKind
	n    int
	secs float64
}

// Task is handed to a task function so it can suspend itself.
type Task struct {
	f *fiber.Fiber
}

// Pass suspends the task, to be resumed after n further Update calls.
func (t *Task) Pass(n int) {
	assert.That(n > 0, "scheduler: Pass count must be positive")
	t.f.Yield(retValue{kind: retPass, n: n})
}

// Wait suspends the task, to be resumed once at least secs seconds of
// cumulative Update dt have elapsed.
func (t *Task) Wait(secs float64) {
	t.f.Yield(retValue{kind: retWait, secs: secs})
}

// Func is a task body. It receives a Task handle to suspend itself with
// Pass/Wait; returning from Func finishes the task.
type Func func(t *Task)

// taskState's run-list links are handle.Handle indices into the
// Scheduler's own task pool rather than raw pointers: Grow reallocates
// the pool's backing arrays as the task count rises, which would
// invalidate *taskState pointers but leaves every previously issued
// Handle resolvable.
type taskState struct {
	f       *fiber.Fiber
	ret     retValue
	counter retValue
	next    handle.Handle
	prev    handle.Handle
}

// Scheduler runs a set of cooperative tasks, resuming each one when its
// Pass/Wait condition is satisfied. Not safe for concurrent use: Invoke
// and Update must be called from the same goroutine (the one driving the
// scheduler's main loop), though task bodies themselves each run on their
// own goroutine between switches.
type Scheduler struct {
	pool *handle.Pool[taskState]

	runFirst handle.Handle
	runLast  handle.Handle
	current  handle.Handle
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{pool: handle.NewPool[taskState](initialCapacity, handle.DefaultGenBits)}
}

func (s *Scheduler) addToList(h handle.Handle) {
	ts, _ := s.pool.Get(h)
	if s.runLast != handle.Invalid {
		last, _ := s.pool.Get(s.runLast)
		last.next = h
		ts.prev = s.runLast
	}
	s.runLast = h
	if s.runFirst == handle.Invalid {
		s.runFirst = h
	}
}

func (s *Scheduler) removeFromList(h handle.Handle) {
	ts, _ := s.pool.Get(h)
	if ts.prev != handle.Invalid {
		prev, _ := s.pool.Get(ts.prev)
		prev.next = ts.next
	}
	if ts.next != handle.Invalid {
		next, _ := s.pool.Get(ts.next)
		next.prev = ts.prev
	}
	if s.runFirst == h {
		s.runFirst = ts.next
	}
	if s.runLast == h {
		s.runLast = ts.prev
	}
	ts.prev, ts.next = handle.Invalid, handle.Invalid
}

// newTaskState reserves a slot in the pool, growing it first if full.
func (s *Scheduler) newTaskState() handle.Handle {
	h, ok := s.pool.New(taskState{prev: handle.Invalid, next: handle.Invalid})
	if !ok {
		s.pool.Grow(s.pool.Capacity() * 2)
		h, ok = s.pool.New(taskState{prev: handle.Invalid, next: handle.Invalid})
		assert.That(ok, "scheduler: task pool exhausted after Grow")
	}
	return h
}

// Invoke starts fn as a new task and runs it until its first
// suspension (Pass/Wait) or completion.
func (s *Scheduler) Invoke(fn Func) {
	h := s.newTaskState()
	ts, _ := s.pool.Get(h)
	ts.f = fiber.Create(func(f *fiber.Fiber, user any) {
		fn(&Task{f: f})
	})
	s.addToList(h)

	s.current = h
	tr := fiber.Switch(ts.f, nil)
	s.current = handle.Invalid
	s.settle(h, tr)
}

func (s *Scheduler) settle(h handle.Handle, tr fiber.Transfer) {
	if tr.Finished {
		s.removeFromList(h)
		s.pool.Delete(h)
		return
	}
	ts, _ := s.pool.Get(h)
	ts.ret = tr.User.(retValue)
	ts.counter = retValue{}
}

// Update advances time by dt seconds, resuming every task whose Pass
// count or Wait duration has elapsed. Tasks invoked or finished during
// this call are not visited again until the next Update.
func (s *Scheduler) Update(dt float64) {
	if s.current != handle.Invalid {
		return
	}

	h := s.runFirst
	for h != handle.Invalid {
		ts, _ := s.pool.Get(h)
		next := ts.next

		var fire bool
		switch ts.ret.kind {
		case retPass:
			ts.counter.n++
			fire = ts.counter.n >= ts.ret.n
		case retWait:
			ts.counter.secs += dt
			fire = ts.counter.secs >= ts.ret.secs
		default:
			assert.That(false, "scheduler: invalid return state in run list")
		}

		if fire {
			s.current = h
			tr := fiber.Switch(ts.f, nil)
			s.current = handle.Invalid
			s.settle(h, tr)
		}

		h = next
	}
}

// Len reports how many tasks are currently suspended in the run list.
func (s *Scheduler) Len() int {
	n := 0
	for h := s.runFirst; h != handle.Invalid; {
		ts, _ := s.pool.Get(h)
		n++
		h = ts.next
	}
	return n
}
