package moment

import (
	"fmt"
	"strings"
)

// =============================================================================
// UNIT - Closed set of calendar fields
// =============================================================================

// Unit names a calendar field. It is used for field access, arithmetic,
// truncation and precision-aware comparisons. The zero value is not a unit.
type Unit int

const (
	Era Unit = iota + 1
	Year
	Month
	WeekOfYear
	WeekOfMonth
	DayOfMonth
	DayOfYear
	DayOfWeek
	DayOfWeekInMonth
	AmPm
	Hour // hour of the half day, 0-11
	HourOfDay
	Minute
	Second
	Millisecond
)

var unitNames = map[Unit]string{
	Era:              "era",
	Year:             "year",
	Month:            "month",
	WeekOfYear:       "weekOfYear",
	WeekOfMonth:      "weekOfMonth",
	DayOfMonth:       "dayOfMonth",
	DayOfYear:        "dayOfYear",
	DayOfWeek:        "dayOfWeek",
	DayOfWeekInMonth: "dayOfWeekInMonth",
	AmPm:             "amPm",
	Hour:             "hour",
	HourOfDay:        "hourOfDay",
	Minute:           "minute",
	Second:           "second",
	Millisecond:      "millisecond",
}

// unitAliases maps lower-cased alternative spellings onto units. Canonical
// names are matched case-insensitively; the single letter moment.js
// shorthands are case-sensitive and live in unitShorthands.
var unitAliases = map[string]Unit{
	"eras":         Era,
	"years":        Year,
	"months":       Month,
	"week":         WeekOfYear,
	"weeks":        WeekOfYear,
	"isoweek":      WeekOfYear,
	"date":         DayOfMonth,
	"dates":        DayOfMonth,
	"day":          DayOfWeek,
	"days":         DayOfWeek,
	"weekday":      DayOfWeek,
	"hours":        HourOfDay,
	"minutes":      Minute,
	"seconds":      Second,
	"milliseconds": Millisecond,
	"ms":           Millisecond,
	"ampm":         AmPm,
}

var unitShorthands = map[string]Unit{
	"y": Year,
	"M": Month,
	"w": WeekOfYear,
	"D": DayOfMonth,
	"d": DayOfWeek,
	"h": HourOfDay,
	"m": Minute,
	"s": Second,
}

// String returns the canonical unit name.
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	_, ok := unitNames[u]
	return ok
}

// ParseUnit resolves a unit name. Canonical names ("dayOfMonth",
// "DAY_OF_MONTH") are case-insensitive; moment style aliases such as
// "years", "dates" or "ms" are accepted too.
func ParseUnit(name string) (Unit, error) {
	if u, ok := unitShorthands[name]; ok {
		return u, nil
	}
	key := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	for u, canonical := range unitNames {
		if strings.ToLower(canonical) == key {
			return u, nil
		}
	}
	if u, ok := unitAliases[key]; ok {
		return u, nil
	}
	return 0, &ArgumentError{Op: "ParseUnit", Msg: fmt.Sprintf("unknown unit: %q", name)}
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, unknownUnit("MarshalText", u)
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// =============================================================================
// UNIT HIERARCHY - Truncation ranks
// =============================================================================

// rank orders units from coarse to fine for StartOf. Units sharing a rank
// truncate identically.
type rank int

const (
	rankNone rank = iota
	rankYear
	rankMonth
	rankDay
	rankHour
	rankMinute
	rankSecond
	rankMillisecond
)

func (u Unit) rank() rank {
	switch u {
	case Year:
		return rankYear
	case Month:
		return rankMonth
	case WeekOfYear, WeekOfMonth, DayOfMonth, DayOfWeek, DayOfWeekInMonth, DayOfYear:
		return rankDay
	case Hour, HourOfDay:
		return rankHour
	case Minute:
		return rankMinute
	case Second:
		return rankSecond
	case Millisecond:
		return rankMillisecond
	}
	return rankNone
}

// Truncatable reports whether StartOf and EndOf accept u.
func (u Unit) Truncatable() bool {
	return u.rank() != rankNone
}

// Units returns every declared unit, coarse to fine.
func Units() []Unit {
	units := make([]Unit, 0, len(unitNames))
	for u := Era; u <= Millisecond; u++ {
		units = append(units, u)
	}
	return units
}
