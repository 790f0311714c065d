package resp

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/trailhead/http/view"
)

var (
	ErrBuilderUsed   = errors.New("builder already built a response")
	ErrInvalidStatus = errors.New("invalid status")
	ErrPanic         = errors.New("panicked writing response")

	// ErrViewNotFound is view.ErrNotFound, so either matches with errors.Is.
	ErrViewNotFound = view.ErrNotFound
)

// A StatusError pairs an error with the Status a Responder answers it with.
type StatusError struct {
	Status Status
	Err    error
}

// NewStatusError wraps err so a Responder answers it with status.
func NewStatusError(status Status, err error) *StatusError {
	return &StatusError{Status: status, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return e.Status.String()
	}

	return fmt.Sprintf("%s: %s", e.Status, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }
