package pattern

import "fmt"

// SyntaxError reports a malformed pattern.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern %q: %s at position %d", e.Pattern, e.Msg, e.Pos)
}

// MismatchError reports text that does not match a pattern.
type MismatchError struct {
	Text string
	Pos  int
	Msg  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("text %q: %s at position %d", e.Text, e.Msg, e.Pos)
}
