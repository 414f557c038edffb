package models

// Screen identifies which page a session is on.
type Screen string

const (
	ScreenMenu      Screen = "menu"
	ScreenBillSplit Screen = "bill-split"
)

// SplitState is the state owned by the split screen.
type SplitState struct {
	// ParticipantNames holds one name per participant, by index.
	ParticipantNames []string

	// Assignments maps a cart line ID to the participant indices it is
	// assigned to, in toggle order. Indices may be out of range after the
	// participant count shrinks.
	Assignments map[string][]int
}

// Clone returns a deep copy of s.
func (s *SplitState) Clone() *SplitState {
	if s == nil {
		return nil
	}
	out := &SplitState{
		ParticipantNames: append([]string(nil), s.ParticipantNames...),
		Assignments:      make(map[string][]int, len(s.Assignments)),
	}
	for id, idx := range s.Assignments {
		out.Assignments[id] = append([]int(nil), idx...)
	}
	return out
}

// SessionState is the transient state of one ordering session.
// It is what a storage.Store holds; nothing in it survives a restart.
type SessionState struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Screen is the page the session is currently on.
	Screen Screen

	// Cart is the ordering screen's cart, in first-add order.
	Cart []CartLine

	// Split is present only while Screen is ScreenBillSplit.
	Split *SplitState

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Clone returns a deep copy of s.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := *s
	out.Cart = CloneLines(s.Cart)
	out.Split = s.Split.Clone()
	return &out
}
