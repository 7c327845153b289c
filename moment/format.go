package moment

import (
	"time"

	"github.com/warp/moment/pattern"
)

// Format renders the moment with a date pattern such as "yyyy/MM/dd".
// Letters the pattern engine does not know yield a *FormatError.
func (m *Moment) Format(layout string) (string, error) {
	s, err := pattern.Format(m.t, layout)
	if err != nil {
		return "", &FormatError{Pattern: layout, Value: m.t, Err: err}
	}
	return s, nil
}

// MustFormat is like Format but panics on a malformed pattern. Intended for
// constant patterns.
func (m *Moment) MustFormat(layout string) string {
	s, err := m.Format(layout)
	if err != nil {
		panic(err)
	}
	return s
}

func parseWithPattern(text, layout string, loc *time.Location) (time.Time, error) {
	t, err := pattern.Parse(text, layout, loc)
	if err != nil {
		return time.Time{}, &ParseError{Text: text, Pattern: layout, Err: err}
	}
	return t, nil
}
