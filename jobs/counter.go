// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/sx/handle"
)

// Counter is the handle returned by Dispatch: it counts down to zero as
// the dispatched batch's jobs finish. WaitAndDelete and TryDelete consume
// a Counter exactly once; using one twice panics in debug builds.
type Counter struct {
	remaining atomix.Int32
	slot      handle.Handle
	deleted   bool
}

// Done reports whether every job in the dispatched batch has finished.
func (c *Counter) Done() bool {
	return c.remaining.LoadAcquire() <= 0
}

func (c *Counter) decrement() {
	c.remaining.AddAcqRel(-1)
}
