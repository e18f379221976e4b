package session

import (
	"errors"
	"fmt"
)

// ErrInvalidSessionState is matched by every InvalidStateError.
var ErrInvalidSessionState = errors.New("invalid session state")

// State is the phase of a review session.
type State int

const (
	StateActive        State = iota // ready to present the card at the cursor
	StateAwaitingGrade              // card presented, waiting for a grade
	StateComplete                   // plan exhausted or cancelled
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateAwaitingGrade:
		return "awaiting_grade"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// InvalidStateError reports an operation attempted in the wrong state.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: session is %s", e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidSessionState }
