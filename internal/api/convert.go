package api

import (
	"fmt"
	"slices"

	"github.com/mmynk/dinesplit/internal/calculator"
	"github.com/mmynk/dinesplit/internal/cart"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/session"
	"github.com/mmynk/dinesplit/internal/splitter"
)

// NewMoney pairs v with its display string.
func NewMoney(v float64) Money {
	return Money{Value: v, Display: calculator.FormatAmount(v)}
}

func MenuItemFromModel(e models.MenuEntry) MenuItem {
	return MenuItem{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Price:         NewMoney(e.Price),
		ImageRef:      e.ImageRef,
		Category:      string(e.Category),
		CategoryLabel: e.Category.Label(),
	}
}

func MenuItemsFromModel(entries []models.MenuEntry) []MenuItem {
	items := make([]MenuItem, len(entries))
	for i, e := range entries {
		items[i] = MenuItemFromModel(e)
	}
	return items
}

func CartLineFromModel(l models.CartLine) CartLine {
	return CartLine{
		LineID:    l.ID,
		Name:      l.Name,
		Category:  string(l.Category),
		Price:     NewMoney(l.Price),
		Quantity:  l.Quantity,
		LineTotal: NewMoney(l.LineTotal()),
	}
}

func CartViewFromModel(c cart.Cart) CartView {
	lines := c.Lines()
	view := CartView{
		Lines:     make([]CartLine, len(lines)),
		Subtotal:  NewMoney(c.Subtotal()),
		ItemCount: c.ItemCount(),
	}
	for i, l := range lines {
		view.Lines[i] = CartLineFromModel(l)
	}
	return view
}

func participantsFromModel(ps []models.Participant) []Participant {
	out := make([]Participant, len(ps))
	for i, p := range ps {
		out[i] = Participant{Index: p.Index, Name: p.Name}
	}
	return out
}

func categoryGroupFromModel(g models.CategoryGroup) CategoryGroup {
	return CategoryGroup{
		Category:  string(g.Category),
		Members:   participantsFromModel(g.Members),
		Total:     NewMoney(g.Total),
		PerPerson: NewMoney(g.PerPerson),
	}
}

// SplitViewFromModel renders the split screen. AssignedTo lists only the
// participants currently in range, in index order.
func SplitViewFromModel(sp splitter.Splitter) (*SplitView, error) {
	sum, err := sp.Summary()
	if err != nil {
		return nil, fmt.Errorf("failed to summarize split: %w", err)
	}

	view := &SplitView{
		Participants:    participantsFromModel(sum.Participants),
		MaxParticipants: sp.MaxParticipants(),
		Lines:           make([]SplitLine, len(sum.Lines)),
		Subtotal:        NewMoney(sum.Subtotal),
		ItemCount:       sum.ItemCount,
		VegTotal:        NewMoney(sum.VegTotal),
		NonVegTotal:     NewMoney(sum.NonVegTotal),
		EqualPerPerson:  NewMoney(sum.Equal.PerPerson),
		ByItem:          make([]PersonShare, len(sum.ByItem)),
		ByItemTotal:     NewMoney(sum.ByItemTotal),
		Unassigned:      append([]string{}, sum.Unassigned...),
		Veg:             categoryGroupFromModel(sum.Category.Veg),
		NonVeg:          categoryGroupFromModel(sum.Category.NonVeg),
	}

	n := sp.ParticipantCount()
	for i, l := range sum.Lines {
		assigned := []int{}
		for _, idx := range sp.Assigned(l.ID) {
			if idx >= 0 && idx < n && !slices.Contains(assigned, idx) {
				assigned = append(assigned, idx)
			}
		}
		slices.Sort(assigned)
		view.Lines[i] = SplitLine{CartLine: CartLineFromModel(l), AssignedTo: assigned}
	}

	for i, share := range sum.ByItem {
		ids := make([]string, len(share.Items))
		for j, item := range share.Items {
			ids[j] = item.ID
		}
		view.ByItem[i] = PersonShare{
			Participant: Participant{Index: share.Participant.Index, Name: share.Participant.Name},
			LineIDs:     ids,
			ItemCount:   len(share.Items),
			Total:       NewMoney(share.Total),
		}
	}

	return view, nil
}

// NotificationsFromModel converts the notifications of an outcome. The
// result is never nil so it encodes as an empty JSON array.
func NotificationsFromModel(out session.Outcome) []Notification {
	notes := make([]Notification, len(out.Notifications))
	for i, n := range out.Notifications {
		notes[i] = Notification{Level: string(n.Level), Message: n.Message}
	}
	return notes
}

// NewOrderResponse renders a session after an action produced out.
func NewOrderResponse(s *session.Session, out session.Outcome) (*OrderResponse, error) {
	resp := &OrderResponse{
		Screen:        string(s.Screen),
		Cart:          CartViewFromModel(s.Cart),
		Notifications: NotificationsFromModel(out),
	}
	if sp, ok := s.Splitter(); ok {
		view, err := SplitViewFromModel(sp)
		if err != nil {
			return nil, err
		}
		resp.Split = view
	}
	return resp, nil
}
