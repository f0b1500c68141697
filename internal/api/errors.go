package api

import (
	"errors"
	"fmt"
)

// Common reading-log API errors.
var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized — check your API token")
	// ErrForbidden is returned when the token may not touch the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when the server rejects a conflicting change.
	ErrConflict = errors.New("conflict")
)

// StatusError is any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("reading-log API error %d", e.Code)
	}
	return fmt.Sprintf("reading-log API error %d: %s", e.Code, e.Body)
}
