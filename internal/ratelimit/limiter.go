// Package ratelimit provides a keyed token-bucket limiter.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = 10 * time.Minute
	idleTimeout     = 30 * time.Minute
)

// entry tracks a per-key rate limiter and when it was last used.
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter is a keyed rate limiter: one rate.Limiter per key (peer address).
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rate    rate.Limit
	burst   int
	now     func() time.Time
}

// NewLimiter creates a keyed rate limiter with the given rate and burst.
// Call Run to evict idle keys.
func NewLimiter(r rate.Limit, burst int) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		rate:    r,
		burst:   burst,
		now:     time.Now,
	}
}

// PerMinute converts a requests-per-minute budget to a rate.Limit.
func PerMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}

// Allow checks whether a request for the given key is allowed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Run evicts idle entries every ten minutes until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Evict(idleTimeout)
		}
	}
}

// Evict drops entries idle for longer than idle and returns how many were
// dropped.
func (l *Limiter) Evict(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	n := 0
	for k, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, k)
			n++
		}
	}
	return n
}
