package timeline

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMarkNotFound is returned when no mark has the requested ID, or when
	// an aggregate is asked of an empty timeline.
	ErrMarkNotFound = errors.New("mark not found")

	// ErrDuplicateMark is returned when a mark ID is saved twice.
	ErrDuplicateMark = errors.New("duplicate mark")

	// ErrInvalidMark is returned for marks without a name or an instant.
	ErrInvalidMark = errors.New("invalid mark")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// NotFoundError names the missing mark.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mark not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrMarkNotFound
}

// DuplicateError names the mark that already exists.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("mark already exists: %s", e.ID)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateMark
}

// ValidationError describes a rejected mark field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid mark: %s %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidMark
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing mark.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMarkNotFound)
}

// IsConflict returns true if the error indicates a duplicate mark.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateMark)
}
