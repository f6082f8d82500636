// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sx is an umbrella for a foundation layer of portable systems
// primitives, laid out as one subpackage per concern:
//
//   - sx/alloc: pluggable Allocator interface plus malloc, linear, stack,
//     and virtual-memory-backed allocator implementations.
//   - sx/vmem: reserve/commit/decommit virtual memory page manager.
//   - sx/fiber: goroutine-backed stackful coroutine primitive.
//   - sx/scheduler: cooperative task scheduler layered on sx/fiber.
//   - sx/jobs: multi-threaded, fiber-based job system with per-priority
//     lock-free ready queues, dependency counters, and thread-affinity
//     pinning.
//   - sx/lfq: SPSC and MPMC lock-free bounded queues.
//   - sx/handle: generic dense/sparse handle pool with generation counters.
//   - sx/hashtable: open-addressed, Fibonacci-hashed fixed-capacity table.
//
// Most subpackages build on one or two neighbors: sx/scheduler on
// sx/fiber and sx/handle (its run list is handle-indexed, not
// pointer-linked, so growing the task pool never invalidates a
// suspended task's links). sx/jobs layers on the most at once: sx/fiber
// for suspension, sx/handle for its job/counter slot pools, and sx/lfq
// for its per-priority ready queues and per-worker resume slots. See
// each subpackage's own doc.go for a quick start.
package sx
