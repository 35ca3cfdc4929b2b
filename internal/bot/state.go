package bot

// State is the mutable part of the poll loop. It is only touched by the
// goroutine running Bot.Start and is never persisted.
type State struct {
	CurrentTimestamp int64
	LastErrorMessage string
}

func newState(timestamp int64) *State {
	return &State{CurrentTimestamp: timestamp}
}

// rememberError stores message and reports whether it differs from the
// previously stored one.
func (s *State) rememberError(message string) bool {
	changed := s.LastErrorMessage != message
	s.LastErrorMessage = message
	return changed
}
