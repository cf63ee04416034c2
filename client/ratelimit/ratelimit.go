// Package ratelimit provides a per-action cooldown gate that suppresses
// duplicate submissions within a fixed window.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a single-slot debounce, not a token bucket: a permitted call
// advances the cooldown to now+interval before the action runs, so a slow
// action still enforces the spacing from when it started. Blocked calls do
// not reset the cooldown. State is per-instance; there is no cross-process
// coordination.
type Limiter struct {
	mu            sync.Mutex
	interval      time.Duration
	nextAllowedAt time.Time
	now           func() time.Time
}

// New creates a Limiter with the given cooldown window. Typical submit
// buttons use 700-800ms.
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval, now: time.Now}
}

// Allow reports whether an attempt made now would be permitted, without
// consuming the slot.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.now().Before(l.nextAllowedAt)
}

// Attempt runs action unless the cooldown window is still open. It returns
// blocked=true without invoking action when suppressed; otherwise it advances
// the cooldown, runs the action, and returns its error.
func (l *Limiter) Attempt(action func() error) (blocked bool, err error) {
	l.mu.Lock()
	now := l.now()
	if now.Before(l.nextAllowedAt) {
		l.mu.Unlock()
		return true, nil
	}
	l.nextAllowedAt = now.Add(l.interval)
	l.mu.Unlock()

	return false, action()
}
