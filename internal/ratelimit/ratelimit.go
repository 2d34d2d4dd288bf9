// Package ratelimit implements a fixed-window request limiter keyed by an
// arbitrary string (the handlers key it by client IP).
//
// How the fixed window works:
// - The first attempt for a key opens a window and starts a counter.
// - Attempts within the window increment the counter; past the limit they
//   are rejected until the window expires.
// - AvailableIn tells a rejected client how long until the window resets,
//   which becomes the retry_after hint in 429 responses.
//
// The limiter only guards uncached upstream fetches — handlers consult the
// response cache first and serve hits without touching the limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request counts per key within fixed windows.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	length  time.Duration
}

// window tracks the counter state for a single key.
type window struct {
	count   int
	startAt time.Time
}

// New creates a limiter allowing max attempts per window of the given length.
func New(max int, length time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		max:     max,
		length:  length,
	}

	// Start background cleanup goroutine
	go l.cleanup()

	return l
}

// Attempt records one attempt for key and reports whether it is allowed.
// The attempt is counted atomically with the check.
func (l *Limiter) Attempt(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.current(key)
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many attempts key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.current(key)
	remaining := l.max - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AvailableIn reports how long until key's window resets. Zero when the key
// still has attempts left.
func (l *Limiter) AvailableIn(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.current(key)
	if w.count < l.max {
		return 0
	}
	remaining := l.length - time.Since(w.startAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// current returns the live window for key, opening a fresh one if the
// previous window has expired. Callers must hold the mutex.
func (l *Limiter) current(key string) *window {
	w, ok := l.windows[key]
	if !ok || time.Since(w.startAt) >= l.length {
		w = &window{startAt: time.Now()}
		l.windows[key] = w
	}
	return w
}

// cleanup periodically removes expired windows to prevent memory leaks.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.Sub(w.startAt) >= l.length {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}
