// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package scheduler layers cooperative task scheduling on top of
sx/fiber: a Scheduler holds a run list of suspended tasks and, on each
Update, resumes exactly the ones whose wait condition has been satisfied.

# Quick start

	s := scheduler.New()
	s.Invoke(func(t *scheduler.Task) {
		for i := 0; i < 3; i++ {
			fmt.Println("tick", i)
			t.Pass(1) // resume on the next Update call
		}
		fmt.Println("done")
		// returning from the task function finishes it
	})
	for i := 0; i < 4; i++ {
		s.Update(0) // drives one Pass(1)-worth of progress per call
	}

A Task suspends itself by calling Pass or Wait from inside its function;
both switch control back to whichever Update call resumed it. Returning
from the function instead of calling Pass/Wait finishes the task and
removes it from the run list.
*/
package scheduler
