// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber_test

import (
	"testing"

	"code.hybscloud.com/sx/fiber"
)

func TestSwitchRoundTrip(t *testing.T) {
	var seen []int
	f := fiber.Create(func(f *fiber.Fiber, user any) {
		n := user.(int)
		seen = append(seen, n)
		n = f.Yield(n + 1).(int)
		seen = append(seen, n)
	})

	tr := fiber.Switch(f, 1)
	if tr.Finished {
		t.Fatal("first Switch reported Finished, want a Yield first")
	}
	if tr.User.(int) != 2 {
		t.Fatalf("yielded value: got %v, want 2", tr.User)
	}

	tr = fiber.Switch(f, 99)
	if !tr.Finished {
		t.Fatal("second Switch should observe the fiber finishing")
	}

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 99 {
		t.Fatalf("fiber body observed %v, want [1 99]", seen)
	}
}

func TestMultipleYieldsAlternateControl(t *testing.T) {
	count := 0
	f := fiber.Create(func(f *fiber.Fiber, user any) {
		for i := 0; i < 5; i++ {
			user = f.Yield(i)
		}
	})

	for i := 0; i < 5; i++ {
		tr := fiber.Switch(f, i)
		if tr.Finished {
			t.Fatalf("Switch %d: finished early", i)
		}
		if tr.User.(int) != i {
			t.Fatalf("Switch %d: got %v, want %d", i, tr.User, i)
		}
		count++
	}
	tr := fiber.Switch(f, nil)
	if !tr.Finished {
		t.Fatal("final Switch should report Finished")
	}
	if count != 5 {
		t.Fatalf("count: got %d, want 5", count)
	}
}
