package models

// CartLine is a menu entry extended with the chosen quantity.
// A cart holds at most one line per entry ID.
type CartLine struct {
	MenuEntry

	// Quantity is always at least 1; a line whose quantity would drop
	// below 1 is removed from the cart instead.
	Quantity int
}

// LineTotal returns price × quantity.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CloneLines returns a copy of lines that shares no backing array with it.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
