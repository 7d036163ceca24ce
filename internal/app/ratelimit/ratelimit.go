// Package ratelimit enforces per-key request budgets for mutating operations.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/roamdine/platform/internal/errors"
)

// Defaults for the in-process limiter.
const (
	DefaultLimit  = 100
	DefaultWindow = time.Minute
)

// Limiter is the budget port. Consume takes one unit for the key and fails
// with a rate-limit error once the key's budget for the current window is
// exhausted.
type Limiter interface {
	Consume(ctx context.Context, key string) error
}

// Unlimited never rejects. Used in tests and for read-only wiring.
type Unlimited struct{}

func (Unlimited) Consume(context.Context, string) error { return nil }

type window struct {
	start time.Time
	count int
}

// FixedWindow is a process-local fixed-window limiter. Counters reset when a
// key's window elapses. Suitable for single-process deployments; multi-process
// deployments should use the Redis limiter instead.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*window
	now     func() time.Time
}

var _ Limiter = (*FixedWindow)(nil)

// NewFixedWindow creates a limiter allowing limit consumptions per key per
// window. Non-positive arguments fall back to the defaults.
func NewFixedWindow(limit int, windowSize time.Duration) *FixedWindow {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}
	return &FixedWindow{
		limit:   limit,
		window:  windowSize,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *FixedWindow) Consume(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[key]
	if w == nil || now.Sub(w.start) >= l.window {
		// Bound the map so abandoned keys cannot grow it without limit.
		// Only elapsed windows are evicted; active keys keep their counts.
		if len(l.windows) > 10000 {
			for k, old := range l.windows {
				if now.Sub(old.start) >= l.window {
					delete(l.windows, k)
				}
			}
		}
		l.windows[key] = &window{start: now, count: 1}
		return nil
	}
	if w.count >= l.limit {
		return errors.RateLimited(key)
	}
	w.count++
	return nil
}
