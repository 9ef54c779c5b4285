// Package ratelimit implements fixed-window request counters.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter counts hits per key inside a fixed window. Allow reports whether
// the hit is within the limit and, when it is not, how long until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps counters in process memory
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	nowF    func() time.Time
}

// NewMemoryLimiter allows limit hits per key every period
func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		nowF:    time.Now,
	}
}

// WithClock overrides the time source
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.nowF = now
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowF()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}

	w.count++
	if w.count > l.limit {
		return false, w.resetAt.Sub(now), nil
	}
	return true, 0, nil
}

// Sweep drops windows that have already reset
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowF()
	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}
