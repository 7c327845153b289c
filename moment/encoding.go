package moment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// RFC3339Milli is the wire layout for JSON and text encoding.
const RFC3339Milli = "2006-01-02T15:04:05.000Z07:00"

// target returns the calendar decoded values are expressed in: the
// receiver's own when it has one, Default otherwise.
func (m *Moment) target() Calendar {
	if m.cal.Location != nil {
		return m.cal
	}
	return Default
}

// =============================================================================
// TEXT AND JSON
// =============================================================================

// MarshalText renders RFC 3339 with milliseconds and the moment's offset.
func (m *Moment) MarshalText() ([]byte, error) {
	return []byte(m.t.Format(RFC3339Milli)), nil
}

// UnmarshalText reads RFC 3339 text (any fraction) or a decimal count of
// epoch milliseconds.
func (m *Moment) UnmarshalText(text []byte) error {
	t, err := decodeInstant(string(text))
	if err != nil {
		return err
	}
	*m = *m.target().FromTime(t)
	return nil
}

// MarshalJSON encodes the moment as an RFC 3339 string.
func (m *Moment) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.t.Format(RFC3339Milli))
}

// UnmarshalJSON accepts an RFC 3339 string or a number of epoch
// milliseconds. null leaves the moment untouched.
func (m *Moment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var ms int64
		if numErr := json.Unmarshal(data, &ms); numErr != nil {
			return &ArgumentError{Op: "UnmarshalJSON", Msg: "expected RFC 3339 string or epoch milliseconds"}
		}
		*m = *m.target().FromEpochMillis(ms)
		return nil
	}
	return m.UnmarshalText([]byte(s))
}

func decodeInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, &ParseError{Text: s, Pattern: time.RFC3339Nano, Err: err}
	}
	return time.UnixMilli(ms), nil
}

// =============================================================================
// DATABASE/SQL
// =============================================================================

// Value stores the moment as epoch milliseconds.
func (m *Moment) Value() (driver.Value, error) {
	return m.UnixMilli(), nil
}

// Scan implements sql.Scanner for integer milliseconds, RFC 3339 text and
// time.Time columns.
func (m *Moment) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = *m.target().FromEpochMillis(v)
	case time.Time:
		*m = *m.target().FromTime(v)
	case string:
		return m.UnmarshalText([]byte(v))
	case []byte:
		return m.UnmarshalText(v)
	case nil:
		return &ArgumentError{Op: "Scan", Msg: "cannot scan NULL into Moment"}
	default:
		return &ArgumentError{Op: "Scan", Msg: fmt.Sprintf("unsupported source type %T", src)}
	}
	return nil
}
