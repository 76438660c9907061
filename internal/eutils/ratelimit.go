package eutils

import (
	"sync"
	"time"
)

// limiter enforces a sliding-window request allowance: at most max
// requests within any window. Callers block in wait until a slot frees.
type limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	stamps []time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func newLimiter(max int, window time.Duration) *limiter {
	return &limiter{
		max:    max,
		window: window,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

func (l *limiter) wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if len(l.stamps) >= l.max {
		wait := l.window - now.Sub(l.stamps[0])
		if wait > 0 {
			l.sleep(wait)
			now = l.now()
			l.evict(now)
		}
	}

	l.stamps = append(l.stamps, now)
}

// evict drops timestamps that have left the window. Callers hold the lock.
func (l *limiter) evict(now time.Time) {
	cut := 0
	for cut < len(l.stamps) && now.Sub(l.stamps[cut]) >= l.window {
		cut++
	}
	if cut > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[cut:]...)
	}
}

// setRate changes the allowance; the window is unchanged.
func (l *limiter) setRate(max int) {
	l.mu.Lock()
	l.max = max
	l.mu.Unlock()
}
