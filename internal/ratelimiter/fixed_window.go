package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowLimiter counts requests per client IP inside a fixed window.
// The whole table resets when the window rolls over, so a burst straddling
// the boundary can briefly exceed the limit. Good enough for an admin API.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	counts  map[string]int
	resetAt time.Time
	limit   int
	window  time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		counts:  make(map[string]int),
		resetAt: time.Now().Add(window),
		limit:   limit,
		window:  window,
	}
}

// Allow reports whether the request may proceed and, when throttled, how
// long the client should wait before retrying.
func (rl *FixedWindowLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if !now.Before(rl.resetAt) {
		rl.counts = make(map[string]int)
		rl.resetAt = now.Add(rl.window)
	}

	if rl.counts[ip] >= rl.limit {
		return false, rl.resetAt.Sub(now)
	}
	rl.counts[ip]++
	return true, 0
}
