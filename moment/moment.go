/*
Package moment provides a mutable date/time value with chainable field
accessors, calendar arithmetic, unit truncation and precision-aware
comparisons.

PURPOSE:
  A Moment owns one decomposed date-time state: an instant with millisecond
  precision broken into calendar fields by a Calendar (location + week
  rules). Field writes renormalize immediately through time.Date, so
  setting minutes to 75 moves one hour forward and leaves 15.

MUTABILITY:
  Moments are mutated in place and setters return the receiver:

    m, _ := moment.Parse("2016-03-15 23:36:12.532", "yyyy-MM-dd HH:mm:ss.SSS")
    m.SetHours(0).SetMinutes(0)
    m.StartOf(moment.Month)

  A Moment is not safe for concurrent mutation. Clone it per goroutine.

COMPARISONS:
  Instant comparisons take anything with UnixMilli() int64 (another
  *Moment, a time.Time, an EpochMillis). The ...In variants compare at a
  unit's precision by cloning and truncating first.

SEE ALSO:
  - unit.go:     unit enumeration and truncation ranks
  - truncate.go: StartOf / EndOf
  - compare.go:  comparison family, Min / Max, leap years
*/
package moment

import (
	"strconv"
	"time"

	"github.com/warp/moment/pattern"
)

// Moment is a mutable point in time with millisecond precision.
type Moment struct {
	t   time.Time
	cal Calendar
}

// Instant is anything that can report an absolute instant. time.Time,
// *Moment and EpochMillis implement it.
type Instant interface {
	UnixMilli() int64
}

// EpochMillis adapts a raw millisecond count to Instant.
type EpochMillis int64

// UnixMilli implements Instant.
func (e EpochMillis) UnixMilli() int64 { return int64(e) }

// =============================================================================
// FIELD SET - Lenient decomposition, normalized once
// =============================================================================

// fieldSet mirrors the seven fields of a field array. Values may be out of
// range; time() normalizes them in one step.
type fieldSet struct {
	year, month, day, hour, minute, second, milli int
}

func fieldsOf(t time.Time) fieldSet {
	return fieldSet{
		year:   t.Year(),
		month:  int(t.Month()) - 1,
		day:    t.Day(),
		hour:   t.Hour(),
		minute: t.Minute(),
		second: t.Second(),
		milli:  t.Nanosecond() / int(time.Millisecond),
	}
}

func (f fieldSet) time(loc *time.Location) time.Time {
	return time.Date(f.year, time.Month(f.month+1), f.day, f.hour, f.minute, f.second,
		f.milli*int(time.Millisecond), loc)
}

func (m *Moment) apply(f fieldSet) *Moment {
	m.t = f.time(m.cal.location())
	return m
}

// =============================================================================
// CLONING AND PROJECTION
// =============================================================================

// Clone returns an independent copy with the same instant and calendar.
func (m *Moment) Clone() *Moment {
	c := *m
	return &c
}

// UnixMilli returns milliseconds since the Unix epoch.
func (m *Moment) UnixMilli() int64 {
	return m.t.UnixMilli()
}

// Unix returns seconds since the Unix epoch, truncated toward zero.
func (m *Moment) Unix() int64 {
	return m.UnixMilli() / 1000
}

// Fields returns [year, month (0-based), day of month, hour of day, minute,
// second, millisecond]. It is the inverse of FromFields.
func (m *Moment) Fields() []int {
	f := fieldsOf(m.t)
	return []int{f.year, f.month, f.day, f.hour, f.minute, f.second, f.milli}
}

// Time returns the decomposed state as a time.Time in the calendar's location.
func (m *Moment) Time() time.Time {
	return m.t
}

// Instant returns the absolute instant as a UTC time.Time.
func (m *Moment) Instant() time.Time {
	return m.t.UTC()
}

// Calendar returns the settings the moment decomposes with.
func (m *Moment) Calendar() Calendar {
	return m.cal
}

// String renders "Moment{ 2038/04/21 22:12:32.321 }".
func (m *Moment) String() string {
	f := fieldsOf(m.t)
	return "Moment{ " + strconv.Itoa(f.year) + "/" +
		pattern.TwoDigits(f.month+1) + "/" +
		pattern.TwoDigits(f.day) + " " +
		pattern.TwoDigits(f.hour) + ":" +
		pattern.TwoDigits(f.minute) + ":" +
		pattern.TwoDigits(f.second) + "." +
		pattern.ThreeDigits(f.milli) + " }"
}

func itoa(n int) string { return strconv.Itoa(n) }

// mod is the non-negative remainder.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
