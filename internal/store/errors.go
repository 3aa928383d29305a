package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a referenced client, staff member
	// or service does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrDuplicateEmail   = errors.New("email already in use")
)

// ConflictError reports that a booking overlaps an existing appointment for
// the same staff member. It carries the offending appointment's identity so
// the API can surface it to the caller.
type ConflictError struct {
	ConflictingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict with appointment %s", e.ConflictingID)
}
