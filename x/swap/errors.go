package swap

import (
	"fmt"

	"github.com/iov-one/tokenswap/errors"
)

// StateError is returned when a swap is not in the state that the requested
// transition starts from.
type StateError struct {
	Expected State
	Actual   State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state: expected %s, got %s", e.Expected, e.Actual)
}

// Cause allows errors.ErrState.Is to match this error.
func (e *StateError) Cause() error {
	return errors.ErrState
}

// AsStateError walks the cause chain of err and returns the first StateError
// found.
func AsStateError(err error) (*StateError, bool) {
	type causer interface {
		Cause() error
	}
	for err != nil {
		if se, ok := err.(*StateError); ok {
			return se, true
		}
		c, ok := err.(causer)
		if !ok {
			return nil, false
		}
		err = c.Cause()
	}
	return nil, false
}
