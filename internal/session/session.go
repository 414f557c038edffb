// Package session connects the menu and split screens of one diner.
//
// A Session holds the current screen, the cart and, while on the split
// screen, the splitter. User actions run the pure cart and splitter
// transitions and the session dispatches the effects they return:
// navigation changes the screen here, notifications are handed back to the
// caller in an Outcome.
package session

import (
	"time"

	"github.com/mmynk/dinesplit/internal/cart"
	"github.com/mmynk/dinesplit/internal/effects"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/splitter"
)

// Outcome is what one user action produced for the caller to show.
type Outcome struct {
	// Notifications are the messages to display, in order.
	Notifications []effects.Notify

	// Navigated lists every screen change made while dispatching, in order.
	Navigated []models.Screen
}

// Session is one diner's transient ordering state.
type Session struct {
	ID        string
	Screen    models.Screen
	Cart      cart.Cart
	CreatedAt time.Time
	UpdatedAt time.Time

	split           *splitter.Splitter
	maxParticipants int
}

// New starts a session on the menu screen with an empty cart.
func New(id string, now time.Time, maxParticipants int) *Session {
	return &Session{
		ID:              id,
		Screen:          models.ScreenMenu,
		CreatedAt:       now,
		UpdatedAt:       now,
		maxParticipants: maxParticipants,
	}
}

// FromState rebuilds a session from stored state.
func FromState(st *models.SessionState, maxParticipants int) *Session {
	s := &Session{
		ID:              st.ID,
		Screen:          st.Screen,
		Cart:            cart.FromLines(st.Cart),
		CreatedAt:       time.Unix(st.CreatedAt, 0),
		UpdatedAt:       time.Unix(st.UpdatedAt, 0),
		maxParticipants: maxParticipants,
	}
	if s.Screen == models.ScreenBillSplit {
		if st.Split == nil || s.Cart.IsEmpty() {
			s.Screen = models.ScreenMenu
		} else {
			sp := splitter.Restore(st.Cart, st.Split, maxParticipants)
			s.split = &sp
		}
	}
	if s.Screen != models.ScreenBillSplit {
		s.Screen = models.ScreenMenu
	}
	return s
}

// State returns the storable form of the session.
func (s *Session) State() *models.SessionState {
	st := &models.SessionState{
		ID:        s.ID,
		Screen:    s.Screen,
		Cart:      s.Cart.Lines(),
		CreatedAt: s.CreatedAt.Unix(),
		UpdatedAt: s.UpdatedAt.Unix(),
	}
	if s.split != nil {
		st.Split = s.split.State()
	}
	return st
}

// Splitter returns the split screen's state, or false when the session is
// not on the split screen.
func (s *Session) Splitter() (splitter.Splitter, bool) {
	if s.split == nil {
		return splitter.Splitter{}, false
	}
	return *s.split, true
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}

func (s *Session) onMenu() bool {
	return s.Screen == models.ScreenMenu
}

// AddItem adds one unit of entry to the cart.
func (s *Session) AddItem(entry models.MenuEntry) Outcome {
	if !s.onMenu() {
		return Outcome{}
	}
	var effs effects.List
	s.Cart, effs = s.Cart.Add(entry)
	return s.dispatch(effs)
}

// SetQuantity replaces a line's quantity.
func (s *Session) SetQuantity(lineID string, quantity int) Outcome {
	if !s.onMenu() {
		return Outcome{}
	}
	var effs effects.List
	s.Cart, effs = s.Cart.SetQuantity(lineID, quantity)
	return s.dispatch(effs)
}

// Increment adds one unit to a line.
func (s *Session) Increment(lineID string) Outcome {
	if !s.onMenu() {
		return Outcome{}
	}
	var effs effects.List
	s.Cart, effs = s.Cart.Increment(lineID)
	return s.dispatch(effs)
}

// Decrement removes one unit from a line without dropping below 1.
func (s *Session) Decrement(lineID string) Outcome {
	if !s.onMenu() {
		return Outcome{}
	}
	var effs effects.List
	s.Cart, effs = s.Cart.Decrement(lineID)
	return s.dispatch(effs)
}

// RemoveItem deletes a line.
func (s *Session) RemoveItem(lineID string) Outcome {
	if !s.onMenu() {
		return Outcome{}
	}
	var effs effects.List
	s.Cart, effs = s.Cart.Remove(lineID)
	return s.dispatch(effs)
}

// Checkout moves to the split screen carrying a snapshot of the cart.
func (s *Session) Checkout() Outcome {
	if !s.onMenu() {
		return Outcome{}
	}
	return s.dispatch(s.Cart.Checkout())
}

// EnterSplit enters the split screen without a navigation payload, as a
// direct link or a reload does. The guard sends the diner back to the menu.
func (s *Session) EnterSplit() Outcome {
	return s.dispatch(effects.List{effects.Navigate{To: models.ScreenBillSplit}})
}

// SetParticipantCount changes the group size on the split screen.
func (s *Session) SetParticipantCount(n int) Outcome {
	if s.split != nil {
		next := s.split.SetParticipantCount(n)
		s.split = &next
	}
	return Outcome{}
}

// RenameParticipant renames a participant on the split screen.
func (s *Session) RenameParticipant(index int, name string) Outcome {
	if s.split != nil {
		next := s.split.Rename(index, name)
		s.split = &next
	}
	return Outcome{}
}

// ToggleAssignment toggles a participant on a line on the split screen.
func (s *Session) ToggleAssignment(lineID string, index int) Outcome {
	if s.split != nil {
		next := s.split.ToggleAssignment(lineID, index)
		s.split = &next
	}
	return Outcome{}
}

// ProceedToPayment is the split screen's terminal action.
func (s *Session) ProceedToPayment(strategy models.Strategy) Outcome {
	if s.split == nil {
		return Outcome{}
	}
	return s.dispatch(s.split.ProceedToPayment(strategy))
}

// BackToMenu returns from the split screen to the menu.
func (s *Session) BackToMenu() Outcome {
	if s.split == nil {
		return Outcome{}
	}
	return s.dispatch(s.split.BackToMenu())
}

// dispatch performs effs in order. Navigation may yield further effects,
// which are performed after the ones already queued.
func (s *Session) dispatch(effs effects.List) Outcome {
	var out Outcome
	queue := append(effects.List(nil), effs...)
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		switch e := e.(type) {
		case effects.Notify:
			out.Notifications = append(out.Notifications, e)
		case effects.Navigate:
			entered, more := s.navigate(e)
			if entered {
				out.Navigated = append(out.Navigated, e.To)
			}
			queue = append(queue, more...)
		}
	}
	return out
}

// navigate reports whether the target screen was entered, along with any
// effects the target produced on entry.
func (s *Session) navigate(nav effects.Navigate) (bool, effects.List) {
	switch nav.To {
	case models.ScreenBillSplit:
		sp, ok, effs := splitter.Enter(nav.Cart, s.maxParticipants)
		if !ok {
			return false, effs
		}
		s.Screen = models.ScreenBillSplit
		s.split = &sp
		return true, effs
	default:
		s.Screen = models.ScreenMenu
		s.split = nil
		return true, nil
	}
}
