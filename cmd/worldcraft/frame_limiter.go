package main

import (
	"time"

	"worldcraft/internal/config"
)

// pausedFPS caps the frame rate while the viewer is paused.
const pausedFPS = 30

// frameLimiter paces the render loop to config.GetFPSLimit.
type frameLimiter struct {
	next time.Time
	now  func() time.Time
	// sleep is swapped in tests
	sleep func(time.Duration)
}

func newFrameLimiter() *frameLimiter {
	return &frameLimiter{now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame is due. Sleeps stop short of the
// deadline and the remainder is spun out.
func (f *frameLimiter) Wait(paused bool) {
	limit := config.GetFPSLimit()
	if paused && (limit == 0 || limit > pausedFPS) {
		limit = pausedFPS
	}
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if !f.next.After(f.now()) {
			break
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
