package ratelimit

import (
	"errors"
	"testing"
	"time"
)

// fakeClock lets tests step time without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(interval time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := New(interval)
	l.now = clock.now
	return l, clock
}

func TestAttemptBlocksWithinWindow(t *testing.T) {
	l, clock := newTestLimiter(700 * time.Millisecond)

	calls := 0
	action := func() error { calls++; return nil }

	blocked, err := l.Attempt(action)
	if blocked || err != nil {
		t.Fatalf("first attempt: blocked=%v err=%v", blocked, err)
	}

	clock.advance(500 * time.Millisecond)
	blocked, err = l.Attempt(action)
	if !blocked {
		t.Error("expected second attempt at +500ms to be blocked")
	}
	if err != nil {
		t.Errorf("blocked attempt returned error: %v", err)
	}
	if calls != 1 {
		t.Errorf("action invoked %d times, want 1", calls)
	}
}

func TestAttemptAllowsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(700 * time.Millisecond)

	calls := 0
	l.Attempt(func() error { calls++; return nil })

	clock.advance(800 * time.Millisecond)
	blocked, _ := l.Attempt(func() error { calls++; return nil })
	if blocked {
		t.Error("expected attempt at +800ms to run")
	}
	if calls != 2 {
		t.Errorf("action invoked %d times, want 2", calls)
	}
}

func TestBlockedAttemptDoesNotResetCooldown(t *testing.T) {
	l, clock := newTestLimiter(700 * time.Millisecond)
	l.Attempt(func() error { return nil })

	// A blocked attempt at +500ms must not push the window out; +750ms from
	// the first call is past the original cooldown.
	clock.advance(500 * time.Millisecond)
	if blocked, _ := l.Attempt(func() error { return nil }); !blocked {
		t.Fatal("expected attempt at +500ms to be blocked")
	}
	clock.advance(250 * time.Millisecond)
	if blocked, _ := l.Attempt(func() error { return nil }); blocked {
		t.Error("blocked attempt reset the cooldown")
	}
}

func TestAttemptPropagatesActionError(t *testing.T) {
	l, _ := newTestLimiter(700 * time.Millisecond)
	want := errors.New("save failed")
	blocked, err := l.Attempt(func() error { return want })
	if blocked {
		t.Fatal("unexpected block")
	}
	if !errors.Is(err, want) {
		t.Errorf("expected action error, got %v", err)
	}
}

func TestAllowPeeksWithoutConsuming(t *testing.T) {
	l, clock := newTestLimiter(700 * time.Millisecond)
	if !l.Allow() {
		t.Fatal("fresh limiter should allow")
	}
	l.Attempt(func() error { return nil })
	if l.Allow() {
		t.Error("expected Allow to report cooldown")
	}
	clock.advance(700 * time.Millisecond)
	if !l.Allow() {
		t.Error("expected Allow after window elapsed")
	}
}
