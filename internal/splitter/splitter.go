// Package splitter implements the bill-split screen as an immutable value.
//
// A Splitter owns a frozen copy of the cart plus the participant names and
// item assignments. Every read recomputes all three strategies from that
// state; nothing is cached and the cart is never written back.
package splitter

import (
	"fmt"

	"github.com/mmynk/dinesplit/internal/calculator"
	"github.com/mmynk/dinesplit/internal/effects"
	"github.com/mmynk/dinesplit/internal/models"
)

const (
	// DefaultMaxParticipants is the upper bound on the group size.
	DefaultMaxParticipants = 20

	// InitialParticipants is the group size when the screen is entered.
	InitialParticipants = 2
)

// Splitter is the split screen's state. The zero value is not usable; use
// Enter or Restore.
type Splitter struct {
	lines           []models.CartLine
	names           []string
	assignments     map[string][]int
	maxParticipants int
}

// Enter opens the split screen with the cart carried by navigation.
// A missing or empty payload yields ok == false and effects that send the
// diner back to the menu with a single error notification.
func Enter(payload []models.CartLine, maxParticipants int) (s Splitter, ok bool, effs effects.List) {
	if len(payload) == 0 {
		return Splitter{}, false, effects.List{
			effects.Navigate{To: models.ScreenMenu},
			effects.Error("No items in cart"),
		}
	}

	s = Splitter{
		lines:           models.CloneLines(payload),
		assignments:     make(map[string][]int),
		maxParticipants: normalizeMax(maxParticipants),
	}
	s.names = resizeNames(nil, min(InitialParticipants, s.maxParticipants))
	return s, true, nil
}

// Restore rebuilds a Splitter from stored state.
func Restore(lines []models.CartLine, state *models.SplitState, maxParticipants int) Splitter {
	s := Splitter{
		lines:           models.CloneLines(lines),
		assignments:     make(map[string][]int),
		maxParticipants: normalizeMax(maxParticipants),
	}
	if state != nil {
		c := state.Clone()
		s.names = c.ParticipantNames
		s.assignments = c.Assignments
	}
	if len(s.names) == 0 {
		s.names = resizeNames(nil, min(InitialParticipants, s.maxParticipants))
	}
	if len(s.names) > s.maxParticipants {
		s.names = s.names[:s.maxParticipants]
	}
	return s
}

// State returns the storable part of the splitter.
func (s Splitter) State() *models.SplitState {
	st := &models.SplitState{
		ParticipantNames: s.names,
		Assignments:      s.assignments,
	}
	return st.Clone()
}

// Lines returns a copy of the frozen cart.
func (s Splitter) Lines() []models.CartLine {
	return models.CloneLines(s.lines)
}

// ParticipantCount returns the current group size.
func (s Splitter) ParticipantCount() int {
	return len(s.names)
}

// MaxParticipants returns the upper bound on the group size.
func (s Splitter) MaxParticipants() int {
	return s.maxParticipants
}

// Participants returns the participants in index order.
func (s Splitter) Participants() []models.Participant {
	out := make([]models.Participant, len(s.names))
	for i, name := range s.names {
		out[i] = models.Participant{Index: i, Name: name}
	}
	return out
}

// Assigned returns the in-order participant indices recorded for a line,
// including indices that are currently out of range.
func (s Splitter) Assigned(lineID string) []int {
	return append([]int(nil), s.assignments[lineID]...)
}

// SetParticipantCount changes the group size, clamped to [1, max].
// Existing names are kept by index and new slots get "Person N".
// Assignments are left as they are; indices past the new count are
// ignored until the count grows back.
func (s Splitter) SetParticipantCount(n int) Splitter {
	n = max(1, min(n, s.maxParticipants))
	next := s.clone()
	next.names = resizeNames(s.names, n)
	return next
}

// Rename sets the display name of the participant at index.
// Out-of-range indices are ignored.
func (s Splitter) Rename(index int, name string) Splitter {
	if index < 0 || index >= len(s.names) {
		return s
	}
	next := s.clone()
	next.names[index] = name
	return next
}

// ToggleAssignment adds the participant at index to the line's assignees,
// or removes them if already assigned. Unknown lines and out-of-range
// indices are ignored.
func (s Splitter) ToggleAssignment(lineID string, index int) Splitter {
	if index < 0 || index >= len(s.names) || !s.hasLine(lineID) {
		return s
	}

	next := s.clone()
	current := next.assignments[lineID]
	for i, idx := range current {
		if idx == index {
			if len(current) == 1 {
				delete(next.assignments, lineID)
			} else {
				next.assignments[lineID] = append(current[:i:i], current[i+1:]...)
			}
			return next
		}
	}
	next.assignments[lineID] = append(current, index)
	return next
}

// Summary computes the cart totals and all three strategies.
func (s Splitter) Summary() (*models.SplitSummary, error) {
	summary, err := calculator.Summarize(s.lines, s.Participants(), s.assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize split: %w", err)
	}
	return summary, nil
}

// ProceedToPayment is the terminal action of the screen. It only produces
// a notification; no payment is taken.
func (s Splitter) ProceedToPayment(strategy models.Strategy) effects.List {
	if !strategy.Valid() {
		return effects.List{effects.Error(fmt.Sprintf("Unknown split method %q", string(strategy)))}
	}
	return effects.List{effects.Success(fmt.Sprintf("Proceeding to payment with %s split...", strategy.Label()))}
}

// BackToMenu leaves the split screen. The cart on the menu is unchanged.
func (s Splitter) BackToMenu() effects.List {
	return effects.List{effects.Navigate{To: models.ScreenMenu}}
}

func (s Splitter) hasLine(id string) bool {
	for _, l := range s.lines {
		if l.ID == id {
			return true
		}
	}
	return false
}

func (s Splitter) clone() Splitter {
	st := s.State()
	return Splitter{
		lines:           s.lines,
		names:           st.ParticipantNames,
		assignments:     st.Assignments,
		maxParticipants: s.maxParticipants,
	}
}

func resizeNames(names []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(names) && names[i] != "" {
			out[i] = names[i]
		} else {
			out[i] = models.DefaultParticipantName(i)
		}
	}
	return out
}

func normalizeMax(n int) int {
	if n < 1 {
		return DefaultMaxParticipants
	}
	return n
}
