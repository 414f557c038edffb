package storage

import (
	"context"
	"log/slog"
	"time"
)

// Janitor periodically deletes sessions idle for longer than TTL.
type Janitor struct {
	Store    Store
	TTL      time.Duration
	Interval time.Duration

	// OnExpired, if set, is called with the number of sessions removed by
	// each sweep that removed any.
	OnExpired func(n int)

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run sweeps every Interval until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep deletes expired sessions once and returns how many were removed.
func (j *Janitor) Sweep(ctx context.Context) int {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	cutoff := now().Add(-j.TTL).Unix()

	n, err := j.Store.DeleteExpired(ctx, cutoff)
	if err != nil {
		slog.Error("Session sweep failed", "error", err)
		return 0
	}
	if n > 0 {
		slog.Info("Expired idle sessions", "count", n, "ttl", j.TTL)
		if j.OnExpired != nil {
			j.OnExpired(n)
		}
	}
	return n
}
