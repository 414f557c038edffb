package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/metrics"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/session"
	"github.com/mmynk/dinesplit/internal/storage"
)

// SplitService implements the Connect SplitService: the bill-split screen.
// Every call returns all three strategies recomputed from the current state.
type SplitService struct {
	*sessions
}

// NewSplitService creates a new SplitService.
func NewSplitService(store storage.Store, m *metrics.Metrics, opts Options) *SplitService {
	return &SplitService{sessions: newSessions(store, m, opts)}
}

// EnterSplit opens the split screen without a cart payload, as following a
// direct link or a reload does. The diner is sent back to the menu with
// an error; use GetSplit to read the split screen.
func (s *SplitService) EnterSplit(ctx context.Context, req *connect.Request[api.EmptyRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "EnterSplit", func(sess *session.Session) session.Outcome {
		return sess.EnterSplit()
	})
}

// GetSplit returns the current session view, including the split summary
// when on the split screen.
func (s *SplitService) GetSplit(ctx context.Context, req *connect.Request[api.EmptyRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "GetSplit", func(*session.Session) session.Outcome {
		return session.Outcome{}
	})
}

// SetParticipantCount changes the group size, clamped to [1, max].
func (s *SplitService) SetParticipantCount(ctx context.Context, req *connect.Request[api.SetParticipantCountRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "SetParticipantCount", func(sess *session.Session) session.Outcome {
		return sess.SetParticipantCount(req.Msg.Count)
	})
}

// RenameParticipant renames one participant by index.
func (s *SplitService) RenameParticipant(ctx context.Context, req *connect.Request[api.RenameParticipantRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "RenameParticipant", func(sess *session.Session) session.Outcome {
		return sess.RenameParticipant(req.Msg.Index, req.Msg.Name)
	})
}

// ToggleAssignment adds or removes a participant on a cart line.
func (s *SplitService) ToggleAssignment(ctx context.Context, req *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "ToggleAssignment", func(sess *session.Session) session.Outcome {
		return sess.ToggleAssignment(req.Msg.LineID, req.Msg.Index)
	})
}

// ProceedToPayment records the chosen strategy. No payment is taken.
func (s *SplitService) ProceedToPayment(ctx context.Context, req *connect.Request[api.ProceedToPaymentRequest]) (*connect.Response[api.OrderResponse], error) {
	strategy := models.Strategy(req.Msg.Strategy)
	return s.apply(ctx, "ProceedToPayment", func(sess *session.Session) session.Outcome {
		if _, ok := sess.Splitter(); ok && strategy.Valid() {
			s.metrics.PaymentIntent(string(strategy))
			slog.Info("Proceeding to payment", "session_id", sess.ID, "strategy", strategy)
		}
		return sess.ProceedToPayment(strategy)
	})
}

// BackToMenu leaves the split screen. The cart is unchanged.
func (s *SplitService) BackToMenu(ctx context.Context, req *connect.Request[api.EmptyRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "BackToMenu", func(sess *session.Session) session.Outcome {
		return sess.BackToMenu()
	})
}
