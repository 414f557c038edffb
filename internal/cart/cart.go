// Package cart implements the ordering screen's cart as an immutable value.
//
// Every transition returns a new Cart and the effects the caller should
// dispatch. The receiver is never modified, so a Cart can be handed to
// another screen as a snapshot without copying.
package cart

import (
	"fmt"

	"github.com/mmynk/dinesplit/internal/effects"
	"github.com/mmynk/dinesplit/internal/models"
)

// Cart is an ordered list of lines, one per menu entry, in first-add order.
// The zero value is an empty cart.
type Cart struct {
	lines []models.CartLine
}

// FromLines builds a cart from stored lines. Lines with a duplicate ID or a
// quantity below 1 are dropped.
func FromLines(lines []models.CartLine) Cart {
	var c Cart
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		c.lines = append(c.lines, l)
	}
	return c
}

// Lines returns a copy of the cart's lines.
func (c Cart) Lines() []models.CartLine {
	return models.CloneLines(c.lines)
}

// Len returns the number of distinct lines.
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line with the given ID.
func (c Cart) Line(id string) (models.CartLine, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return models.CartLine{}, false
}

// Subtotal returns Σ price × quantity over all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

// ItemCount returns Σ quantity over all lines.
func (c Cart) ItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Add puts one unit of entry in the cart. An entry already present gets its
// quantity incremented; a new entry is appended with quantity 1.
func (c Cart) Add(entry models.MenuEntry) (Cart, effects.List) {
	if i := c.index(entry.ID); i >= 0 {
		next := c.clone()
		next.lines[i].Quantity++
		return next, effects.List{effects.Success(fmt.Sprintf("Added another %s to cart", entry.Name))}
	}

	next := Cart{lines: make([]models.CartLine, len(c.lines), len(c.lines)+1)}
	copy(next.lines, c.lines)
	next.lines = append(next.lines, models.CartLine{MenuEntry: entry, Quantity: 1})
	return next, effects.List{effects.Success(fmt.Sprintf("%s added to cart", entry.Name))}
}

// SetQuantity replaces the quantity of the line with the given ID.
// A quantity below 1 removes the line. Unknown IDs are ignored.
func (c Cart) SetQuantity(id string, quantity int) (Cart, effects.List) {
	i := c.index(id)
	if i < 0 {
		return c, nil
	}
	if quantity < 1 {
		return c.without(i), nil
	}
	next := c.clone()
	next.lines[i].Quantity = quantity
	return next, nil
}

// Increment adds one unit to the line with the given ID.
func (c Cart) Increment(id string) (Cart, effects.List) {
	l, ok := c.Line(id)
	if !ok {
		return c, nil
	}
	return c.SetQuantity(id, l.Quantity+1)
}

// Decrement removes one unit from the line with the given ID, never going
// below 1. Use Remove to drop a line.
func (c Cart) Decrement(id string) (Cart, effects.List) {
	l, ok := c.Line(id)
	if !ok {
		return c, nil
	}
	return c.SetQuantity(id, max(1, l.Quantity-1))
}

// Remove deletes the line with the given ID regardless of its quantity.
func (c Cart) Remove(id string) (Cart, effects.List) {
	i := c.index(id)
	if i < 0 {
		return c, nil
	}
	return c.without(i), effects.List{effects.Info("Item removed from cart")}
}

// Checkout hands the cart to the split screen. An empty cart stays on the
// menu with an error notification.
func (c Cart) Checkout() effects.List {
	if c.IsEmpty() {
		return effects.List{effects.Error("Your cart is empty")}
	}
	return effects.List{effects.Navigate{To: models.ScreenBillSplit, Cart: c.Lines()}}
}

func (c Cart) index(id string) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	return Cart{lines: models.CloneLines(c.lines)}
}

func (c Cart) without(i int) Cart {
	next := Cart{lines: make([]models.CartLine, 0, len(c.lines)-1)}
	next.lines = append(next.lines, c.lines[:i]...)
	next.lines = append(next.lines, c.lines[i+1:]...)
	return next
}
