// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides bounded, lock-free FIFO queues for the two
// producer/consumer shapes jobs.System actually needs:
//
//   - SPSC: single-producer single-consumer, wait-free both ways.
//   - MPMC: multi-producer multi-consumer, FAA/SCQ-based.
//
// jobs.System is the package's one real caller. Each Priority gets its
// own MPMC[*job] ready queue: Dispatch enqueues from whichever goroutine
// called it (possibly several at once, if callers race), and every
// worker goroutine dequeues from the same queues looking for work, so
// both the producer and consumer sides are genuinely concurrent and
// unbounded in count. Separately, each worker thread gets an
// SPSC[*job] "resume slot", sized to the System's whole in-flight job
// budget: when a job suspends itself waiting on a
// dependency batch it hasn't finished yet, its own fiber goroutine
// enqueues itself into its thread's slot and yields; the worker
// goroutine that owns that thread later dequeues it to check whether
// the dependency is done, re-enqueueing it if not. Producer and
// consumer here are never the same goroutine at the same instant, so
// the SPSC contract (at most one producer, one consumer, never
// concurrent with each other) holds even though which physical
// goroutine plays the producer role changes from one pin to the next.
//
// # Quick start
//
//	ready := lfq.NewMPMC[*job](1024)
//	if err := ready.Enqueue(&j); lfq.IsWouldBlock(err) {
//	    // ready queue is at capacity
//	}
//	j, err := ready.Dequeue()
//	if lfq.IsWouldBlock(err) {
//	    // nothing to run right now
//	}
//
// # Shutdown
//
// MPMC implements Drainer: calling Drain lets Dequeue skip the FAA
// threshold livelock guard, so a consumer can empty whatever is left
// in the queue during shutdown without waiting on producer pressure
// that will never arrive. SPSC has no threshold to relax and does not
// implement Drainer; its resume slots are drained implicitly when the
// worker goroutines that own them exit.
//
// # Memory model
//
// MPMC needs 2n physical slots for capacity n (the SCQ algorithm's ABA
// safety trades memory for avoiding CAS retries under contention).
// SPSC needs exactly n slots, rounded up to a power of 2 for cheap
// index masking.
package lfq
