package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/catalog"
	"github.com/mmynk/dinesplit/internal/metrics"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/session"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/token"
)

// OrderService implements the Connect OrderService: starting a session and
// the menu screen's cart actions.
type OrderService struct {
	*sessions
	catalog *catalog.Catalog
	tokens  *token.Manager
}

// NewOrderService creates a new OrderService.
func NewOrderService(store storage.Store, c *catalog.Catalog, tokens *token.Manager, m *metrics.Metrics, opts Options) *OrderService {
	return &OrderService{
		sessions: newSessions(store, m, opts),
		catalog:  c,
		tokens:   tokens,
	}
}

// StartSession creates an empty session on the menu screen and returns the
// token that identifies it.
func (s *OrderService) StartSession(ctx context.Context, req *connect.Request[api.EmptyRequest]) (*connect.Response[api.StartSessionResponse], error) {
	now := s.now()
	sess := session.New(uuid.New().String(), now, s.opts.MaxParticipants)

	if err := s.store.CreateSession(ctx, sess.State()); err != nil {
		slog.Error("StartSession: failed to save session", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to create session: %w", err))
	}

	tok, err := s.tokens.Generate(sess.ID)
	if err != nil {
		slog.Error("StartSession: failed to issue token", "session_id", sess.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	order, err := api.NewOrderResponse(sess, session.Outcome{})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.SessionCreated()
	slog.Info("Session started", "session_id", sess.ID)

	return connect.NewResponse(&api.StartSessionResponse{
		Token:     tok,
		SessionID: sess.ID,
		ExpiresAt: now.Add(s.opts.TTL).Unix(),
		Order:     *order,
	}), nil
}

// GetOrder returns the current session view without changing it.
func (s *OrderService) GetOrder(ctx context.Context, req *connect.Request[api.EmptyRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "GetOrder", func(*session.Session) session.Outcome {
		return session.Outcome{}
	})
}

// AddItem adds one unit of a menu entry. Unknown entries are ignored.
func (s *OrderService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.OrderResponse], error) {
	entry, ok := s.catalog.Lookup(req.Msg.MenuItemID)
	if !ok {
		slog.Debug("AddItem: unknown menu item", "menu_item_id", req.Msg.MenuItemID)
	}
	return s.apply(ctx, "AddItem", func(sess *session.Session) session.Outcome {
		if !ok {
			return session.Outcome{}
		}
		s.cartOp(sess, "add")
		return sess.AddItem(entry)
	})
}

// SetQuantity replaces a line's quantity.
func (s *OrderService) SetQuantity(ctx context.Context, req *connect.Request[api.SetQuantityRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.applyLine(ctx, "SetQuantity", req.Msg.LineID, func(sess *session.Session) session.Outcome {
		return sess.SetQuantity(req.Msg.LineID, req.Msg.Quantity)
	})
}

// Increment adds one unit to a line.
func (s *OrderService) Increment(ctx context.Context, req *connect.Request[api.LineRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.applyLine(ctx, "Increment", req.Msg.LineID, func(sess *session.Session) session.Outcome {
		return sess.Increment(req.Msg.LineID)
	})
}

// Decrement removes one unit from a line, stopping at 1.
func (s *OrderService) Decrement(ctx context.Context, req *connect.Request[api.LineRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.applyLine(ctx, "Decrement", req.Msg.LineID, func(sess *session.Session) session.Outcome {
		return sess.Decrement(req.Msg.LineID)
	})
}

// RemoveItem deletes a line from the cart.
func (s *OrderService) RemoveItem(ctx context.Context, req *connect.Request[api.LineRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.applyLine(ctx, "RemoveItem", req.Msg.LineID, func(sess *session.Session) session.Outcome {
		return sess.RemoveItem(req.Msg.LineID)
	})
}

// Checkout moves to the split screen, or reports an empty cart.
func (s *OrderService) Checkout(ctx context.Context, req *connect.Request[api.EmptyRequest]) (*connect.Response[api.OrderResponse], error) {
	return s.apply(ctx, "Checkout", func(sess *session.Session) session.Outcome {
		if sess.Screen != models.ScreenMenu {
			return session.Outcome{}
		}
		out := sess.Checkout()
		if sess.Screen == models.ScreenBillSplit {
			s.metrics.Checkout("navigated")
		} else {
			s.metrics.Checkout("empty_cart")
		}
		return out
	})
}

// applyLine runs a cart action on an existing line. Actions on lines that
// are not in the cart are ignored.
func (s *OrderService) applyLine(ctx context.Context, name, lineID string, action func(*session.Session) session.Outcome) (*connect.Response[api.OrderResponse], error) {
	op := opName(name)
	return s.apply(ctx, name, func(sess *session.Session) session.Outcome {
		if _, ok := sess.Cart.Line(lineID); !ok {
			slog.Debug(name+": unknown cart line", "line_id", lineID, "session_id", sess.ID)
			return session.Outcome{}
		}
		s.cartOp(sess, op)
		return action(sess)
	})
}

// cartOp counts a cart mutation made on the menu screen.
func (s *OrderService) cartOp(sess *session.Session, op string) {
	if sess.Screen == models.ScreenMenu {
		s.metrics.CartOp(op)
	}
}

func opName(rpc string) string {
	switch rpc {
	case "SetQuantity":
		return "set_quantity"
	case "Increment":
		return "increment"
	case "Decrement":
		return "decrement"
	case "RemoveItem":
		return "remove"
	default:
		return rpc
	}
}
