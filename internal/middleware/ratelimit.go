package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/ratelimit"
)

// ErrRateLimited is returned when a peer has used up its request budget.
var ErrRateLimited = errors.New("too many requests, slow down")

// RateLimit returns an interceptor that rejects requests from peers that
// exceed their budget in l.
func RateLimit(l *ratelimit.Limiter) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			key := peerKey(req.Peer().Addr)
			if !l.Allow(key) {
				slog.Warn("Rate limited", "peer", key, "procedure", req.Spec().Procedure)
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}

// peerKey strips the port so every connection from one host shares a bucket.
func peerKey(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
