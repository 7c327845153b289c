package moment

import "time"

// =============================================================================
// NAMED ACCESSORS - Getters return normalized values, setters bubble
// =============================================================================

// Milliseconds returns the millisecond of the second, 0-999.
func (m *Moment) Milliseconds() int { return m.t.Nanosecond() / int(time.Millisecond) }

// SetMilliseconds sets the millisecond; 1000 rolls into the next second.
func (m *Moment) SetMilliseconds(v int) *Moment { return m.setField(Millisecond, v) }

// Seconds returns the second of the minute, 0-59.
func (m *Moment) Seconds() int { return m.t.Second() }

// SetSeconds sets the second of the minute.
func (m *Moment) SetSeconds(v int) *Moment { return m.setField(Second, v) }

// Minutes returns the minute of the hour, 0-59.
func (m *Moment) Minutes() int { return m.t.Minute() }

// SetMinutes sets the minute of the hour.
func (m *Moment) SetMinutes(v int) *Moment { return m.setField(Minute, v) }

// Hours returns the hour of the day, 0-23.
func (m *Moment) Hours() int { return m.t.Hour() }

// SetHours sets the hour of the day.
func (m *Moment) SetHours(v int) *Moment { return m.setField(HourOfDay, v) }

// Dates returns the day of the month, 1-31.
func (m *Moment) Dates() int { return m.t.Day() }

// SetDates sets the day of the month. 0 is the last day of the previous
// month.
func (m *Moment) SetDates(v int) *Moment { return m.setField(DayOfMonth, v) }

// Days returns the day of the week, 1 for the calendar's first day of the
// week through 7 for the last.
func (m *Moment) Days() int { return m.cal.weekdayOffset(m.t.Weekday()) + 1 }

// SetDays moves within the current week. 8 is the first day of next week.
func (m *Moment) SetDays(v int) *Moment { return m.setField(DayOfWeek, v) }

// Months returns the month, 0 for January through 11 for December.
func (m *Moment) Months() int { return int(m.t.Month()) - 1 }

// SetMonths sets the 0-based month; 12 is January of the next year.
func (m *Moment) SetMonths(v int) *Moment { return m.setField(Month, v) }

// Years returns the astronomical year (0 is 1 BC).
func (m *Moment) Years() int { return m.t.Year() }

// SetYears sets the year.
func (m *Moment) SetYears(v int) *Moment { return m.setField(Year, v) }

// DayOfYear returns the day of the year, 1-366.
func (m *Moment) DayOfYear() int { return m.t.YearDay() }

// SetDayOfYear sets the day of the year.
func (m *Moment) SetDayOfYear(v int) *Moment { return m.setField(DayOfYear, v) }

// =============================================================================
// GENERIC ACCESS
// =============================================================================

// Get returns the current value of any unit.
func (m *Moment) Get(u Unit) (int, error) {
	switch u {
	case Era:
		if m.t.Year() >= 1 {
			return 1, nil
		}
		return 0, nil
	case Year:
		return m.Years(), nil
	case Month:
		return m.Months(), nil
	case WeekOfYear:
		return m.weekOfYear(), nil
	case WeekOfMonth:
		return m.cal.weekNumber(m.t.Day(), m.cal.weekdayOffset(m.t.Weekday())), nil
	case DayOfMonth:
		return m.Dates(), nil
	case DayOfYear:
		return m.DayOfYear(), nil
	case DayOfWeek:
		return m.Days(), nil
	case DayOfWeekInMonth:
		return (m.t.Day()-1)/7 + 1, nil
	case AmPm:
		return m.t.Hour() / 12, nil
	case Hour:
		return m.t.Hour() % 12, nil
	case HourOfDay:
		return m.Hours(), nil
	case Minute:
		return m.Minutes(), nil
	case Second:
		return m.Seconds(), nil
	case Millisecond:
		return m.Milliseconds(), nil
	}
	return 0, unknownUnit("Get", u)
}

// Set writes any unit. Out-of-range values bubble into larger units.
func (m *Moment) Set(u Unit, v int) (*Moment, error) {
	if !u.Valid() {
		return m, unknownUnit("Set", u)
	}
	return m.setField(u, v), nil
}

// setField assumes u is valid.
func (m *Moment) setField(u Unit, v int) *Moment {
	f := fieldsOf(m.t)
	switch u {
	case Era:
		era := 1
		if v <= 0 {
			era = 0
		}
		if current, _ := m.Get(Era); current != era {
			f.year = 1 - f.year
		}
	case Year:
		f.year = v
	case Month:
		f.month = v
	case WeekOfYear:
		f.month, f.day = 0, m.cal.firstWeekStart(m.t.Year(), time.January)+(v-1)*7+m.Days()-1
	case WeekOfMonth:
		f.day = m.cal.firstWeekStart(m.t.Year(), m.t.Month()) + (v-1)*7 + m.Days() - 1
	case DayOfMonth:
		f.day = v
	case DayOfYear:
		f.month, f.day = 0, v
	case DayOfWeek:
		f.day += v - m.Days()
	case DayOfWeekInMonth:
		f.day = dayOfWeekInMonth(m.t.Year(), m.t.Month(), m.t.Weekday(), v)
	case AmPm:
		f.hour = f.hour%12 + 12*v
	case Hour:
		f.hour = f.hour/12*12 + v
	case HourOfDay:
		f.hour = v
	case Minute:
		f.minute = v
	case Second:
		f.second = v
	case Millisecond:
		f.milli = v
	}
	return m.apply(f)
}

// =============================================================================
// WEEK ARITHMETIC
// =============================================================================

// weekNumber numbers the week holding dayOfPeriod (1-based) within a period
// (year or month). dateOffset is that day's position in its week. Week 1 is
// the first week with at least MinimalDaysInFirstWeek days of the period;
// days before it are in week 0.
func (c Calendar) weekNumber(dayOfPeriod, dateOffset int) int {
	startOffset := mod(dateOffset-(dayOfPeriod-1), 7)
	week := (dayOfPeriod + startOffset - 1) / 7
	if 7-startOffset >= c.minimalDays() {
		week++
	}
	return week
}

// firstWeekStart returns the day of month (possibly <= 0) on which week 1
// of the given month starts. For January this is also week 1 of the year.
func (c Calendar) firstWeekStart(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := c.weekdayOffset(first.Weekday())
	start := 1 - offset
	if 7-offset < c.minimalDays() {
		start += 7
	}
	return start
}

// weekOfYear follows Gregorian week numbering: the first days of January
// may belong to the last week of the previous year, and the last days of
// December to week 1 of the next.
func (m *Moment) weekOfYear() int {
	yday := m.t.YearDay()
	offset := m.cal.weekdayOffset(m.t.Weekday())
	week := m.cal.weekNumber(yday, offset)

	if week == 0 {
		return m.cal.weekNumber(yday+daysInYear(m.t.Year()-1), offset)
	}
	if week >= 52 {
		length := daysInYear(m.t.Year())
		nextJan1 := mod(offset+length-yday+1, 7)
		daysBeforeNextWeek := mod(7-nextJan1, 7)
		nextWeekStart := length + 1 + daysBeforeNextWeek
		if daysBeforeNextWeek >= m.cal.minimalDays() && yday >= nextWeekStart-7 {
			return 1
		}
	}
	return week
}

// dayOfWeekInMonth returns the day of month of the n-th occurrence of wd.
// Negative n counts from the end of the month; 0 is the occurrence before
// the first.
func dayOfWeekInMonth(year int, month time.Month, wd time.Weekday, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstOccurrence := 1 + mod(int(wd)-int(first.Weekday()), 7)
	if n >= 0 {
		return firstOccurrence + (n-1)*7
	}
	length := daysIn(year, month)
	lastWeekday := mod(int(first.Weekday())+length-1, 7)
	lastOccurrence := length - mod(lastWeekday-int(wd), 7)
	return lastOccurrence + (n+1)*7
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
