package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/token"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionIDKey is the context key for the session ID carried by the token.
const SessionIDKey contextKey = "session_id"

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

// WithSessionID returns a copy of ctx carrying id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// bearerToken returns the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", token.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", token.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireSession returns an interceptor that validates the session token and
// adds its session ID to the request context. Procedures listed in public
// skip the check; StartSession is the one that issues tokens.
func RequireSession(tokens *token.Manager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			if skip[procedure] {
				return next(ctx, req)
			}

			tokenString, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				slog.Warn("Rejected RPC without session", "procedure", procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				slog.Warn("Rejected RPC with bad session token", "procedure", procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithSessionID(ctx, claims.SessionID), req)
		}
	}
}

// OptionalSession adds the session ID to the context when a valid token is
// present and lets the request through either way.
func OptionalSession(tokens *token.Manager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, err := bearerToken(req.Header().Get("Authorization")); err == nil {
				if claims, err := tokens.Validate(tokenString); err == nil {
					ctx = WithSessionID(ctx, claims.SessionID)
				}
			}
			return next(ctx, req)
		}
	}
}
