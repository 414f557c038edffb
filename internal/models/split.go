package models

import "fmt"

// Participant is one party splitting the bill.
// Identity is the position Index; Name is a mutable display label.
type Participant struct {
	Index int
	Name  string
}

// DefaultParticipantName returns the placeholder name for position index,
// e.g. "Person 1" for index 0.
func DefaultParticipantName(index int) string {
	return fmt.Sprintf("Person %d", index+1)
}

// Strategy names one of the three split methods.
type Strategy string

const (
	StrategyEqual    Strategy = "equal"
	StrategyByItem   Strategy = "items"
	StrategyCategory Strategy = "category"
)

// Label returns the name shown to diners for the strategy.
func (s Strategy) Label() string {
	switch s {
	case StrategyEqual:
		return "Equal"
	case StrategyByItem:
		return "By Items"
	case StrategyCategory:
		return "Veg/Non-Veg"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	return s == StrategyEqual || s == StrategyByItem || s == StrategyCategory
}

// EqualSplit is the result of dividing the subtotal evenly.
type EqualSplit struct {
	// PerPerson is subtotal / participant count, unrounded.
	PerPerson float64
}

// PersonShare represents one participant's total under the per-item split.
type PersonShare struct {
	Participant Participant

	// Items are the cart lines assigned to this participant.
	Items []CartLine

	// Total is the sum of the full line totals of Items.
	// Shared lines are not divided among co-assignees.
	Total float64
}

// CategoryGroup is one half of the category split.
type CategoryGroup struct {
	Category Category

	// Members are the participants placed in this group by position.
	Members []Participant

	// Total is the sum of line totals for lines of this category.
	Total float64

	// PerPerson is Total / len(Members), or 0 when the group is empty.
	PerPerson float64
}

// CategorySplit partitions participants positionally into a vegetarian
// group (first half, rounded up) and a non-vegetarian group.
type CategorySplit struct {
	Veg    CategoryGroup
	NonVeg CategoryGroup
}

// SplitSummary is every derived value the split screen shows.
// All three strategies are always computed.
type SplitSummary struct {
	Lines        []CartLine
	Participants []Participant

	Subtotal    float64
	ItemCount   int
	VegTotal    float64
	NonVegTotal float64

	Equal    EqualSplit
	ByItem   []PersonShare
	Category CategorySplit

	// ByItemTotal is the sum of all per-item shares. It differs from
	// Subtotal when lines are unassigned or shared.
	ByItemTotal float64

	// Unassigned lists the IDs of lines assigned to nobody.
	Unassigned []string
}
