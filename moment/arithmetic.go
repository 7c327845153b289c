package moment

import (
	"math"
	"time"
)

const (
	msPerSecond  = 1000
	msPerMinute  = 60 * msPerSecond
	msPerHour    = 60 * msPerMinute
	msPerHalfDay = 12 * msPerHour
)

// =============================================================================
// ARITHMETIC - Signed calendar arithmetic
// =============================================================================

// Add moves the moment by amount units. Year and month arithmetic keeps the
// day of month where possible and clamps it otherwise (Jan 31 + 1 month is
// Feb 28 or 29). Day and week arithmetic preserves the wall clock across
// offset changes; hours and smaller are absolute shifts in epoch
// milliseconds. A shift past the int64 millisecond range fails and leaves
// the moment untouched.
func (m *Moment) Add(amount int, u Unit) (*Moment, error) {
	switch u {
	case Era:
		era, _ := m.Get(Era)
		switch {
		case amount > 0:
			era = 1
		case amount < 0:
			era = 0
		}
		return m.setField(Era, era), nil
	case Year:
		return m.addMonths(12 * amount), nil
	case Month:
		return m.addMonths(amount), nil
	case WeekOfYear, WeekOfMonth, DayOfWeekInMonth:
		return m.addDays(7 * amount), nil
	case DayOfMonth, DayOfYear, DayOfWeek:
		return m.addDays(amount), nil
	case AmPm:
		return m.addMillis(amount, msPerHalfDay)
	case Hour, HourOfDay:
		return m.addMillis(amount, msPerHour)
	case Minute:
		return m.addMillis(amount, msPerMinute)
	case Second:
		return m.addMillis(amount, msPerSecond)
	case Millisecond:
		return m.addMillis(amount, 1)
	}
	return m, unknownUnit("Add", u)
}

// Subtract is Add with the amount negated. math.MinInt has no negation and
// is rejected.
func (m *Moment) Subtract(amount int, u Unit) (*Moment, error) {
	if !u.Valid() {
		return m, unknownUnit("Subtract", u)
	}
	if amount == math.MinInt {
		return m, &ArgumentError{Op: "Subtract", Msg: "amount out of range"}
	}
	return m.Add(-amount, u)
}

func (m *Moment) addMonths(n int) *Moment {
	f := fieldsOf(m.t)
	total := f.year*12 + f.month + n
	f.year, f.month = floorDiv(total, 12), mod(total, 12)
	if length := daysIn(f.year, time.Month(f.month+1)); f.day > length {
		f.day = length
	}
	return m.apply(f)
}

func (m *Moment) addDays(n int) *Moment {
	f := fieldsOf(m.t)
	f.day += n
	return m.apply(f)
}

func (m *Moment) addMillis(amount int, per int64) (*Moment, error) {
	n := int64(amount)
	if n > math.MaxInt64/per || n < math.MinInt64/per {
		return m, &ArgumentError{Op: "Add", Msg: "amount out of range"}
	}
	shift, ms := n*per, m.UnixMilli()
	if (shift > 0 && ms > math.MaxInt64-shift) || (shift < 0 && ms < math.MinInt64-shift) {
		return m, &ArgumentError{Op: "Add", Msg: "amount out of range"}
	}
	m.t = time.UnixMilli(ms + shift).In(m.t.Location())
	return m, nil
}
