package quiz

import (
	"errors"
	"fmt"
)

// ErrInsufficientContent is matched by every InsufficientContentError.
var ErrInsufficientContent = errors.New("insufficient content")

// InsufficientContentError is returned when a chapter has too little
// material for the requested quiz mode. No session should be started.
type InsufficientContentError struct {
	Kind Kind
	Have int
	Need int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("%s: need at least %d entries, have %d", e.Kind.Label(), e.Need, e.Have)
}

func (e *InsufficientContentError) Unwrap() error {
	return ErrInsufficientContent
}
