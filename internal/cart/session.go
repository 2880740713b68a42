package cart

// Session owns the cart of one shopping session. It is not safe for
// concurrent use; one caller drives a session at a time.
type Session struct {
	state State
}

// NewSession starts from an empty cart.
func NewSession() *Session {
	return &Session{state: Empty()}
}

// Restore resumes a session from a previously saved state. The total is
// recomputed rather than trusted.
func Restore(s State) *Session {
	return &Session{state: withItems(s.clone().Items)}
}

// State returns a copy of the current cart.
func (s *Session) State() State {
	return s.state.clone()
}

// Dispatch applies the actions in order and returns the resulting state.
func (s *Session) Dispatch(actions ...Action) State {
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	return s.State()
}
