package eutils

import (
	"testing"
	"time"
)

// clockedLimiter drives a limiter with a fake clock that advances on
// sleep instead of waiting.
func clockedLimiter(max int, window time.Duration) (*limiter, *[]time.Duration) {
	l := newLimiter(max, window)
	now := time.Unix(0, 0)
	var slept []time.Duration
	l.now = func() time.Time { return now }
	l.sleep = func(d time.Duration) {
		slept = append(slept, d)
		now = now.Add(d)
	}
	return l, &slept
}

func Test_limiter_underAllowance(t *testing.T) {
	l, slept := clockedLimiter(3, time.Second)

	l.wait()
	l.wait()
	l.wait()

	if len(*slept) != 0 {
		t.Errorf("slept %v within the allowance", *slept)
	}
	if len(l.stamps) != 3 {
		t.Errorf("recorded %d stamps, want 3", len(l.stamps))
	}
}

func Test_limiter_blocksAtAllowance(t *testing.T) {
	l, slept := clockedLimiter(2, time.Second)

	l.wait()
	l.wait()
	l.wait()

	if len(*slept) != 1 || (*slept)[0] != time.Second {
		t.Errorf("slept %v, want one full window", *slept)
	}
	// the two original stamps have aged out after the sleep
	if len(l.stamps) != 1 {
		t.Errorf("recorded %d stamps after eviction, want 1", len(l.stamps))
	}
}

func Test_limiter_evictsOldStamps(t *testing.T) {
	l := newLimiter(2, time.Second)
	now := time.Unix(100, 0)
	l.now = func() time.Time { return now }
	l.sleep = func(d time.Duration) { t.Fatalf("slept %v after the window passed", d) }

	l.wait()
	l.wait()

	// a full window later both slots are free again
	now = now.Add(time.Second)
	l.wait()

	if len(l.stamps) != 1 {
		t.Errorf("recorded %d stamps, want 1", len(l.stamps))
	}
}

func Test_limiter_setRate(t *testing.T) {
	l, slept := clockedLimiter(1, time.Second)

	l.wait()
	l.setRate(3)
	l.wait()
	l.wait()

	if len(*slept) != 0 {
		t.Errorf("slept %v after raising the allowance", *slept)
	}
}
