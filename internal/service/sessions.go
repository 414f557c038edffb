package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/metrics"
	"github.com/mmynk/dinesplit/internal/middleware"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/session"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/token"
)

// ErrSessionExpired is returned for sessions idle longer than the TTL that
// the janitor has not swept yet.
var ErrSessionExpired = errors.New("session expired")

// Options configures the ordering and split services.
type Options struct {
	// MaxParticipants bounds the group size on the split screen.
	MaxParticipants int

	// TTL is how long a session may sit idle before it expires.
	TTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// sessions applies user actions to stored sessions. It is shared by
// OrderService and SplitService.
type sessions struct {
	store   storage.Store
	metrics *metrics.Metrics
	opts    Options
}

func newSessions(store storage.Store, m *metrics.Metrics, opts Options) *sessions {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &sessions{store: store, metrics: m, opts: opts}
}

func (s *sessions) now() time.Time {
	return s.opts.Now()
}

// apply runs action against the caller's session in one atomic store update
// and renders the result.
func (s *sessions) apply(ctx context.Context, name string, action func(*session.Session) session.Outcome) (*connect.Response[api.OrderResponse], error) {
	id := middleware.GetSessionID(ctx)
	if id == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, token.ErrMissingToken)
	}

	now := s.now()
	var resp *api.OrderResponse
	_, err := s.store.UpdateSession(ctx, id, func(st *models.SessionState) error {
		if now.Sub(time.Unix(st.UpdatedAt, 0)) > s.opts.TTL {
			return ErrSessionExpired
		}

		sess := session.FromState(st, s.opts.MaxParticipants)
		out := action(sess)
		sess.Touch(now)

		var err error
		resp, err = api.NewOrderResponse(sess, out)
		if err != nil {
			return err
		}
		*st = *sess.State()

		slog.Debug("Applied session action",
			"action", name,
			"session_id", id,
			"screen", sess.Screen,
			"notifications", len(out.Notifications),
		)
		return nil
	})
	if err != nil {
		return nil, s.storeError(name, id, err)
	}

	return connect.NewResponse(resp), nil
}

// storeError maps a failed session update to a Connect error.
func (s *sessions) storeError(name, id string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, ErrSessionExpired):
		slog.Info(name+": session not found", "session_id", id, "error", err)
		return connect.NewError(connect.CodeNotFound, fmt.Errorf("session %s: %w", id, err))
	default:
		slog.Error(name+" failed", "session_id", id, "error", err)
		return connect.NewError(connect.CodeInternal, fmt.Errorf("failed to update session: %w", err))
	}
}
