// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/sx/lfq"
)

// TestSPSCBasic exercises the resume-slot shape jobs.System relies on: a
// single producer filling the ring to capacity, then a single consumer
// draining it back to empty, in FIFO order.
func TestSPSCBasic(t *testing.T) {
	q := lfq.NewSPSC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMPMCBasic checks the queue type jobs.System uses for its ready
// queues: filling it to capacity and draining it back to empty, in FIFO
// order, from a single goroutine (no concurrent producers or consumers).
func TestMPMCBasic(t *testing.T) {
	q := lfq.NewMPMC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestSPSCWrapAround tests SPSC wrap-around with multiple fill/drain cycles.
func TestSPSCWrapAround(t *testing.T) {
	q := lfq.NewSPSC[int](4)

	for round := range 10 {
		for i := range 4 {
			v := round*100 + i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d enqueue %d: %v", round, i, err)
			}
		}

		for i := range 4 {
			val, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d dequeue %d: %v", round, i, err)
			}
			expected := round*100 + i
			if val != expected {
				t.Fatalf("round %d dequeue %d: got %d, want %d", round, i, val, expected)
			}
		}
	}
}

// TestMPMCWrapAround tests MPMC wrap-around with multiple fill/drain cycles.
func TestMPMCWrapAround(t *testing.T) {
	q := lfq.NewMPMC[int](4)

	for round := range 10 {
		for i := range 4 {
			v := round*100 + i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d enqueue %d: %v", round, i, err)
			}
		}

		for i := range 4 {
			val, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d dequeue %d: %v", round, i, err)
			}
			expected := round*100 + i
			if val != expected {
				t.Fatalf("round %d dequeue %d: got %d, want %d", round, i, val, expected)
			}
		}
	}
}

// TestMPMCDrain verifies that Drain lets a consumer empty the queue
// without the FAA threshold mechanism returning ErrWouldBlock early.
func TestMPMCDrain(t *testing.T) {
	q := lfq.NewMPMC[int](4)
	for i := range 3 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	q.Drain()
	for i := range 3 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d) after Drain: %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}
}

// TestZeroValue tests that zero is a valid value.
func TestZeroValue(t *testing.T) {
	q := lfq.NewMPMC[int](4)
	v := 0
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("enqueue 0: %v", err)
	}
	val, err := q.Dequeue()
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if val != 0 {
		t.Fatalf("got %d, want 0", val)
	}
}

// TestCapacityRounding tests that capacity is rounded up to next power of 2.
func TestCapacityRounding(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{100, 128},
		{1000, 1024},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			q := lfq.NewMPMC[int](tt.input)
			if q.Cap() != tt.expected {
				t.Fatalf("NewMPMC(%d).Cap() = %d, want %d", tt.input, q.Cap(), tt.expected)
			}
		})
	}
}

// TestPanicOnSmallCapacity tests that capacity < 2 causes panic.
func TestPanicOnSmallCapacity(t *testing.T) {
	tests := []struct {
		name   string
		create func()
	}{
		{"SPSC", func() { lfq.NewSPSC[int](1) }},
		{"MPMC", func() { lfq.NewMPMC[int](1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic for capacity < 2")
				}
			}()
			tt.create()
		})
	}
}

// TestQueueInterface checks both surviving queues satisfy Queue, and
// that only MPMC also satisfies Drainer.
func TestQueueInterface(t *testing.T) {
	var _ lfq.Queue[int] = lfq.NewSPSC[int](8)
	var _ lfq.Queue[int] = lfq.NewMPMC[int](8)
	var _ lfq.Drainer = lfq.NewMPMC[int](8)
}
