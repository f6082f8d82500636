// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// Transfer is the value passed across a switch, symmetric in both
// directions: Switch receives it back from the fiber it resumed, and
// Yield receives it back from whoever resumes the fiber next.
type Transfer struct {
	From     *Fiber
	User     any
	Finished bool
}

// Func is the body run on a Fiber's dedicated goroutine. It receives the
// Fiber it is running on (to call Yield) and the user value passed by
// the first Switch into it. Returning from Func ends the fiber: the next
// Switch into it (there must be none) would block forever, so the final
// Transfer out always carries Finished = true instead.
type Func func(f *Fiber, user any)

// Fiber is a cooperatively-scheduled coroutine backed by its own
// goroutine. The zero Fiber is not usable; construct with Create.
type Fiber struct {
	in  chan Transfer
	out chan Transfer
}

// Create starts fn on a new goroutine, suspended until the first Switch.
func Create(fn Func) *Fiber {
	f := &Fiber{in: make(chan Transfer), out: make(chan Transfer)}
	go func() {
		t := <-f.in
		fn(f, t.User)
		f.out <- Transfer{From: f, Finished: true}
	}()
	return f
}

// Switch resumes f with user and blocks the calling goroutine until f
// either calls Yield or returns. Calling Switch on a fiber that has
// already finished blocks forever; callers must track Transfer.Finished
// themselves (mirroring the native primitive, which has no way to detect
// a dead fiber either).
func Switch(f *Fiber, user any) Transfer {
	f.in <- Transfer{User: user}
	return <-f.out
}

// Yield suspends the fiber currently running f's Func, handing user back
// to whoever last called Switch(f, ...), and blocks until f is resumed
// again. Must only be called from within f's own Func.
func (f *Fiber) Yield(user any) any {
	f.out <- Transfer{From: f, User: user}
	t := <-f.in
	return t.User
}
