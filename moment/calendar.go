package moment

import (
	"time"
)

// =============================================================================
// CALENDAR - Platform settings a moment decomposes its instant with
// =============================================================================

// Calendar holds the settings used to break an instant into fields: the
// location and the week rules. The zero Calendar means time.Local, weeks
// starting on Sunday and a first week of at least one day.
type Calendar struct {
	Location *time.Location

	// FirstDayOfWeek is day 1 for Days/SetDays and the day StartOf(week)
	// snaps to.
	FirstDayOfWeek time.Weekday

	// MinimalDaysInFirstWeek is the number of days of the new year (month)
	// the first week must contain. 0 means 1. ISO 8601 weeks use Monday
	// and 4.
	MinimalDaysInFirstWeek int
}

// Default is used by the package-level constructors. Replace it at program
// start only; it is not guarded for concurrent writes.
var Default = Calendar{Location: time.Local, FirstDayOfWeek: time.Sunday, MinimalDaysInFirstWeek: 1}

// ISO returns a calendar with ISO 8601 week rules in loc.
func ISO(loc *time.Location) Calendar {
	return Calendar{Location: loc, FirstDayOfWeek: time.Monday, MinimalDaysInFirstWeek: 4}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Calendar) minimalDays() int {
	if c.MinimalDaysInFirstWeek < 1 {
		return 1
	}
	if c.MinimalDaysInFirstWeek > 7 {
		return 7
	}
	return c.MinimalDaysInFirstWeek
}

// weekdayOffset is the 0-based position of wd within a week starting on the
// calendar's first day.
func (c Calendar) weekdayOffset(wd time.Weekday) int {
	return mod(int(wd)-int(c.FirstDayOfWeek), 7)
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

func (c Calendar) wrap(t time.Time) *Moment {
	loc := c.location()
	return &Moment{t: time.UnixMilli(t.UnixMilli()).In(loc), cal: c}
}

// Now captures the current instant.
func (c Calendar) Now() *Moment {
	return c.wrap(time.Now())
}

// FromTime expresses t in the calendar's location.
func (c Calendar) FromTime(t time.Time) *Moment {
	return c.wrap(t)
}

// FromInstant copies the instant of i.
func (c Calendar) FromInstant(i Instant) *Moment {
	return c.FromEpochMillis(i.UnixMilli())
}

// FromEpochMillis sets the instant directly.
func (c Calendar) FromEpochMillis(ms int64) *Moment {
	return &Moment{t: time.UnixMilli(ms).In(c.location()), cal: c}
}

// FromFields builds a moment from exactly seven values in the order
// [year, month (0-based), day of month, hour of day, minute, second,
// millisecond]. Out-of-range values bubble into the next larger field, as
// with Set. The length is checked before anything is built.
func (c Calendar) FromFields(values []int) (*Moment, error) {
	if values == nil {
		return nil, &ArgumentError{Op: "FromFields", Msg: "field array cannot be nil"}
	}
	if len(values) != 7 {
		return nil, &ArgumentError{Op: "FromFields", Msg: "field array must have exactly 7 elements, got " + itoa(len(values))}
	}
	f := fieldSet{
		year:   values[0],
		month:  values[1],
		day:    values[2],
		hour:   values[3],
		minute: values[4],
		second: values[5],
		milli:  values[6],
	}
	return &Moment{t: f.time(c.location()), cal: c}, nil
}

// Parse reads text with a date pattern such as "yyyy-MM-dd HH:mm:ss.SSS".
func (c Calendar) Parse(text, pattern string) (*Moment, error) {
	t, err := parseWithPattern(text, pattern, c.location())
	if err != nil {
		return nil, err
	}
	return c.wrap(t), nil
}

// Package-level constructors use Default.

// Now captures the current instant.
func Now() *Moment { return Default.Now() }

// Parse reads text with a date pattern.
func Parse(text, pattern string) (*Moment, error) { return Default.Parse(text, pattern) }

// FromTime copies the decomposed state of t, keeping its location.
func FromTime(t time.Time) *Moment {
	cal := Default
	cal.Location = t.Location()
	return cal.wrap(t)
}

// FromInstant copies the instant of i.
func FromInstant(i Instant) *Moment { return Default.FromInstant(i) }

// FromEpochMillis sets the instant directly.
func FromEpochMillis(ms int64) *Moment { return Default.FromEpochMillis(ms) }

// FromFields builds a moment from a seven element field array.
func FromFields(values []int) (*Moment, error) { return Default.FromFields(values) }

// Copy is FromEpochMillis(src.UnixMilli()): the result keeps no link to src.
func Copy(src *Moment) *Moment { return FromEpochMillis(src.UnixMilli()) }
