package moment

// =============================================================================
// TRUNCATION - StartOf / EndOf
// =============================================================================

// truncateStep resets one field. A step applies when the requested unit is
// at or above its rank, so startOf(Year) runs every step and startOf(Hour)
// only the minute, second and millisecond steps.
type truncateStep struct {
	rank  rank
	reset func(f *fieldSet)
}

// truncateSteps is ordered coarse to fine.
var truncateSteps = []truncateStep{
	{rankYear, func(f *fieldSet) { f.month = 0 }},
	{rankMonth, func(f *fieldSet) { f.day = 1 }},
	{rankDay, func(f *fieldSet) { f.hour = 0 }},
	{rankHour, func(f *fieldSet) { f.minute = 0 }},
	{rankMinute, func(f *fieldSet) { f.second = 0 }},
	{rankSecond, func(f *fieldSet) { f.milli = 0 }},
}

// StartOf snaps the moment to the start of its unit window. Week units land
// on the calendar's first day of the week at midnight; DayOfWeekInMonth
// keeps the same weekday occurrence at midnight. Era and AmPm are rejected.
func (m *Moment) StartOf(u Unit) (*Moment, error) {
	r := u.rank()
	if r == rankNone {
		return m, unknownUnit("StartOf", u)
	}

	ordinal := (m.t.Day()-1)/7 + 1
	weekday := m.t.Weekday()

	f := fieldsOf(m.t)
	for _, step := range truncateSteps {
		if step.rank >= r {
			step.reset(&f)
		}
	}
	m.apply(f)

	switch u {
	case WeekOfYear, WeekOfMonth:
		m.SetDays(1)
	case DayOfWeekInMonth:
		// Same occurrence of the captured weekday, counted from the 1st.
		f = fieldsOf(m.t)
		f.day = dayOfWeekInMonth(f.year, m.t.Month(), weekday, ordinal)
		m.apply(f)
	}
	return m, nil
}

// EndOf moves the moment to the last millisecond of its unit window:
// StartOf(u), plus one u, minus one millisecond. EndOf(Millisecond) leaves
// the moment untouched.
func (m *Moment) EndOf(u Unit) (*Moment, error) {
	if u == Millisecond {
		return m, nil
	}
	if _, err := m.StartOf(u); err != nil {
		return m, unknownUnit("EndOf", u)
	}
	if _, err := m.Add(1, u); err != nil {
		return m, err
	}
	return m.Subtract(1, Millisecond)
}
