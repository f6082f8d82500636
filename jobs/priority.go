// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// Priority selects which of the System's run lists a job waits in.
// Within a single priority, jobs are picked up in dispatch order; across
// priorities, High always drains before Normal, Normal before Low.
type Priority int

const (
	High Priority = iota
	Normal
	Low

	numPriorities
)

func (p Priority) String() string {
	switch p {
	case High:
		return "high"
	case Normal:
		return "normal"
	case Low:
		return "low"
	default:
		return "invalid"
	}
}
