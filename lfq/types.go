// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Queue is the combined producer-consumer interface for a bounded FIFO.
//
// Both operations are non-blocking: Enqueue returns ErrWouldBlock on a
// full queue, Dequeue returns it on an empty one. Neither reports length,
// since an accurate count would require cross-core synchronization the
// lock-free algorithms are built to avoid; callers that need one track it
// themselves (jobs.System does, via its dependency Counter).
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer enqueues elements. Thread safety depends on the concrete
// queue: SPSC tolerates exactly one producer goroutine (at a time; the
// goroutine identity may change between calls as long as calls never
// overlap), MPMC tolerates any number concurrently.
type Producer[T any] interface {
	// Enqueue copies *elem into the queue. Returns ErrWouldBlock if full.
	Enqueue(elem *T) error
}

// Consumer dequeues elements. Thread safety depends on the concrete
// queue: SPSC tolerates exactly one consumer goroutine (under the same
// non-overlap rule as its producer side), MPMC tolerates any number.
type Consumer[T any] interface {
	// Dequeue returns the oldest enqueued element, or ErrWouldBlock if
	// the queue is empty.
	Dequeue() (T, error)
}

// Drainer lets a producer-side shutdown signal ripple through to
// consumers without forcing them to keep seeing ErrWouldBlock from the
// FAA threshold mechanism. SPSC has no threshold to relax, so it does
// not implement Drainer.
type Drainer interface {
	// Drain tells Dequeue to skip threshold checks: a hint, valid only
	// once the caller guarantees no further Enqueue will happen.
	Drain()
}
