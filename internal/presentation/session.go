package presentation

import "github.com/framecast/framecast/internal/models"

// Session is the presentation session state. It is an immutable value:
// operations on the Controller produce new Session values rather than
// mutating fields in place. Whenever Active is true the sequence is
// non-empty and ActiveIndex is within range.
type Session struct {
	// Active reports whether a presentation is running.
	Active bool

	// Sequence is the slide order for this session.
	Sequence models.Sequence

	// ActiveIndex is the position of the current slide in Sequence.
	ActiveIndex int
}

// IdleSession returns the inactive, empty session value.
func IdleSession() Session {
	return Session{}
}

// ActiveFrame returns the currently presented frame, if any.
func (s Session) ActiveFrame() (models.FrameRef, bool) {
	if !s.Active || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Sequence) {
		return models.FrameRef{}, false
	}
	return s.Sequence[s.ActiveIndex], true
}

// Len returns the number of slides in the session sequence.
func (s Session) Len() int {
	return len(s.Sequence)
}

// clone returns a deep copy so callers cannot alias internal state.
func (s Session) clone() Session {
	s.Sequence = s.Sequence.Clone()
	return s
}
