package utils

import (
	"context"
	"sync"
	"time"
)

// RateLimiter grants at most max requests in any sliding window of the
// configured length. Waiting callers are served in arrival order.
type RateLimiter struct {
	max    int
	window time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// turn has room for one holder; blocked senders queue FIFO behind it.
	turn chan struct{}

	mu     sync.Mutex
	grants []time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 1
	}
	return &RateLimiter{
		max:    max,
		window: window,
		now:    time.Now,
		sleep:  sleepContext,
		turn:   make(chan struct{}, 1),
	}
}

// Acquire blocks until a slot is free and consumes it. It only fails when
// ctx is done before the slot is granted; no slot is consumed in that case.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	select {
	case l.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.turn }()

	for {
		now := l.now()

		l.mu.Lock()
		l.prune(now)
		if len(l.grants) < l.max {
			l.grants = append(l.grants, now)
			l.mu.Unlock()
			return nil
		}
		wait := l.grants[0].Add(l.window).Sub(now)
		l.mu.Unlock()

		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// InWindow reports how many grants fall inside the current window.
func (l *RateLimiter) InWindow() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
	return len(l.grants)
}

func (l *RateLimiter) prune(now time.Time) {
	i := 0
	for i < len(l.grants) && now.Sub(l.grants[i]) >= l.window {
		i++
	}
	if i > 0 {
		l.grants = append(l.grants[:0], l.grants[i:]...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
