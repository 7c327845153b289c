/*
errors.go - Error types for the moment package

PURPOSE:
  All error kinds raised by Moment in one place. Every failure is raised
  synchronously by the call that triggers it and never retried internally.

ERROR KINDS:
  1. InvalidArgument - malformed constructor input, unknown unit
  2. Parse           - text could not be read with a pattern
  3. Format          - a moment could not be rendered with a pattern

USAGE:
  Sentinels work with errors.Is, structured errors with errors.As. The
  structured errors also unwrap to their underlying cause:

    m, err := moment.Parse(text, "yyyy-MM-dd")
    if errors.Is(err, moment.ErrParse) {
        var pe *moment.ParseError
        errors.As(err, &pe) // pe.Text, pe.Pattern, pe.Err
    }

SEE ALSO:
  - pattern/errors.go: causes wrapped by ParseError / FormatError
*/
package moment

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is returned for malformed input such as a field
	// array of the wrong length or an unknown unit.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParse is returned when text does not match a pattern, or the
	// pattern itself is malformed.
	ErrParse = errors.New("parse error")

	// ErrFormat is returned when a moment cannot be rendered with a pattern.
	ErrFormat = errors.New("format error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ArgumentError describes rejected input.
type ArgumentError struct {
	Op  string // e.g. "FromFields", "StartOf"
	Msg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("moment: %s: %s", e.Op, e.Msg)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// ParseError keeps the original text, the pattern and the underlying cause.
type ParseError struct {
	Text    string
	Pattern string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("moment: parse error occurred while parsing [%s] with pattern [%s]: %v",
		e.Text, e.Pattern, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// FormatError keeps the value being rendered, the pattern and the cause.
type FormatError struct {
	Pattern string
	Value   time.Time
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("moment: format error occurred while formatting [%s] with pattern [%s]: %v",
		e.Value.Format(time.RFC3339Nano), e.Pattern, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

func unknownUnit(op string, u Unit) error {
	return &ArgumentError{Op: op, Msg: "unknown unit: " + u.String()}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error is caused by caller input rather
// than by the environment.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrFormat)
}
