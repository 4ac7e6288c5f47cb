package health

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateCheck indicates a check id is already registered.
	ErrDuplicateCheck = errors.New("health: duplicate check id")

	// ErrInvalidCheck indicates a check definition cannot be registered.
	ErrInvalidCheck = errors.New("health: invalid check")

	// ErrCheckNotFound indicates a check id is not registered.
	ErrCheckNotFound = errors.New("health: check not found")
)

// DuplicateCheckError reports a registration that reused an existing id.
type DuplicateCheckError struct {
	ID string
}

func (e *DuplicateCheckError) Error() string {
	return fmt.Sprintf("health: check %q already registered", e.ID)
}

// Is reports whether target is ErrDuplicateCheck.
func (e *DuplicateCheckError) Is(target error) bool {
	return target == ErrDuplicateCheck
}
