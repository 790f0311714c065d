package resp

import (
	"fmt"
	"net/http"
	"strconv"
)

// A Status is an HTTP status code known to net/http.
type Status int

const (
	StatusOK                  = Status(http.StatusOK)
	StatusCreated             = Status(http.StatusCreated)
	StatusAccepted            = Status(http.StatusAccepted)
	StatusNoContent           = Status(http.StatusNoContent)
	StatusSeeOther            = Status(http.StatusSeeOther)
	StatusTemporaryRedirect   = Status(http.StatusTemporaryRedirect)
	StatusPermanentRedirect   = Status(http.StatusPermanentRedirect)
	StatusBadRequest          = Status(http.StatusBadRequest)
	StatusNotFound            = Status(http.StatusNotFound)
	StatusMethodNotAllowed    = Status(http.StatusMethodNotAllowed)
	StatusNotAcceptable       = Status(http.StatusNotAcceptable)
	StatusConflict            = Status(http.StatusConflict)
	StatusUnprocessableEntity = Status(http.StatusUnprocessableEntity)
	StatusTooManyRequests     = Status(http.StatusTooManyRequests)
	StatusInternalServerError = Status(http.StatusInternalServerError)
)

// ParseStatus converts code into a Status,
// failing with ErrInvalidStatus when net/http does not know it.
func ParseStatus(code int) (Status, error) {
	s := Status(code)
	if err := s.Valid(); err != nil {
		return 0, err
	}

	return s, nil
}

// Code returns s as an int.
func (s Status) Code() int { return int(s) }

// String renders s as its code and reason phrase, e.g., "201 Created".
func (s Status) String() string {
	text := http.StatusText(int(s))
	if text == "" {
		return strconv.Itoa(int(s))
	}

	return fmt.Sprintf("%d %s", int(s), text)
}

// Valid asserts s is a status code net/http knows.
func (s Status) Valid() error {
	if http.StatusText(int(s)) == "" {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}

	return nil
}

// IsError asserts s is a 4xx or 5xx status.
func (s Status) IsError() bool { return s >= 400 }
