package engine

import (
	"sync"
	"time"
)

// ClockFunc returns the current wall-clock time in nanoseconds. It is
// injectable so scenarios S1-S6 can be reproduced bit-exactly in tests, per
// spec.md §9 ("Clock as side effect").
type ClockFunc func() uint64

// SystemClock is the production clock, backed by time.Now().
func SystemClock() uint64 {
	return uint64(time.Now().UnixNano())
}

// monotonicClock wraps a ClockFunc and clamps its output to be strictly
// increasing across calls, so that a non-monotonic or colliding underlying
// clock can never violate spec.md §4.4's per-instrument/process timestamp
// ordering guarantee: ts = max(prevTs + 1, now()).
type monotonicClock struct {
	mu     sync.Mutex
	source ClockFunc
	prev   uint64
}

func newMonotonicClock(source ClockFunc) *monotonicClock {
	if source == nil {
		source = SystemClock
	}
	return &monotonicClock{source: source}
}

func (c *monotonicClock) next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source()
	ts := now
	if ts <= c.prev {
		ts = c.prev + 1
	}
	c.prev = ts
	return ts
}
