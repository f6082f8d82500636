// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/sx/fiber"
	"code.hybscloud.com/sx/handle"
)

// Descriptor describes one unit of work to dispatch.
type Descriptor struct {
	Callback func(jc *JobContext)
	Priority Priority
}

// job is the scheduler's private view of one in-flight unit of work. It
// never carries its own run-list pointers: a ready job lives inside its
// Priority's lfq.MPMC ready queue, and a suspended job lives inside its
// owning worker's lfq.SPSC resume slot (see System.ready/System.pinned).
type job struct {
	slot handle.Handle

	fiber *fiber.Fiber

	counter     *Counter // decremented when this job finishes
	waitCounter *Counter // nil, or the batch this job is blocked on

	desc Descriptor
}
