package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition indicates an operation the current state does not allow.
	ErrInvalidTransition = errors.New("playback: invalid transition")

	// ErrInvalidSpeed indicates a non-positive speed factor.
	ErrInvalidSpeed = errors.New("playback: speed must be positive")
)

// TransitionError records the rejected operation and the state it was
// attempted from.
type TransitionError struct {
	Op   string
	From State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: cannot %s while %s", ErrInvalidTransition, e.Op, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
