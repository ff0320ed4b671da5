// Package ratelimit implements a fixed-window request counter: requests are
// counted per key within discrete, non-overlapping intervals, and the
// counter resets when a new interval begins.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits or rejects requests per key.
type Limiter interface {
	// Allow records one request for key and reports whether it fits the
	// window's budget. When it does not, retryAfter says how long until the
	// current window rolls over.
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// window is the mutable counter state for one key.
type window struct {
	start time.Time
	count int
}

// FixedWindow is a Limiter allowing at most limit requests per interval per
// key. Counting is increment-under-lock, so concurrent requests for the
// same key cannot lose updates.
type FixedWindow struct {
	limit    int
	interval time.Duration
	timeFunc func() time.Time // injectable for testing

	mu      sync.Mutex
	windows map[string]*window

	// lastSweep tracks the last time stale windows were dropped.
	lastSweep time.Time
}

// Ensure FixedWindow implements Limiter interface
var _ Limiter = (*FixedWindow)(nil)

// NewFixedWindow creates a limiter admitting limit requests per interval
// for each key.
func NewFixedWindow(limit int, interval time.Duration) *FixedWindow {
	if limit < 1 {
		panic("limit must be positive")
	}
	if interval <= 0 {
		panic("interval must be positive")
	}

	return &FixedWindow{
		limit:    limit,
		interval: interval,
		timeFunc: time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow implements Limiter.Allow.
func (l *FixedWindow) Allow(key string) (bool, time.Duration) {
	now := l.timeFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeSweep(now)

	w, exists := l.windows[key]
	if !exists || now.Sub(w.start) >= l.interval {
		l.windows[key] = &window{start: now, count: 1}
		return true, 0
	}

	if w.count < l.limit {
		w.count++
		return true, 0
	}

	return false, w.start.Add(l.interval).Sub(now)
}

// maybeSweep drops windows that ended before the previous interval so the
// map does not grow with one entry per client forever. Runs at most once
// per interval and only while the lock is already held.
func (l *FixedWindow) maybeSweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.interval {
		return
	}
	l.lastSweep = now

	for key, w := range l.windows {
		if now.Sub(w.start) >= l.interval {
			delete(l.windows, key)
		}
	}
}
