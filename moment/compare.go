package moment

import "slices"

// =============================================================================
// INSTANT COMPARISONS
// =============================================================================

// IsBefore reports whether m is strictly before x.
func (m *Moment) IsBefore(x Instant) bool { return m.UnixMilli() < x.UnixMilli() }

// IsAfter reports whether m is strictly after x.
func (m *Moment) IsAfter(x Instant) bool { return m.UnixMilli() > x.UnixMilli() }

// IsSame reports whether m and x are the same instant.
func (m *Moment) IsSame(x Instant) bool { return m.UnixMilli() == x.UnixMilli() }

// IsSameOrBefore reports whether m is at or before x.
func (m *Moment) IsSameOrBefore(x Instant) bool { return m.IsBefore(x) || m.IsSame(x) }

// IsSameOrAfter reports whether m is at or after x.
func (m *Moment) IsSameOrAfter(x Instant) bool { return m.IsAfter(x) || m.IsSame(x) }

// IsBetween reports whether m is strictly inside (from, to).
func (m *Moment) IsBetween(from, to Instant) bool { return m.IsAfter(from) && m.IsBefore(to) }

// Compare orders m against x by instant: -1, 0 or +1.
func (m *Moment) Compare(x Instant) int {
	a, b := m.UnixMilli(), x.UnixMilli()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal reports instant equality. Two moments in different calendars are
// equal when they denote the same instant.
func (m *Moment) Equal(other *Moment) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.UnixMilli() == other.UnixMilli()
}

// Hash is consistent with Equal.
func (m *Moment) Hash() uint32 {
	v := uint64(m.UnixMilli())
	return uint32(v ^ v>>32)
}

// =============================================================================
// UNIT PRECISION - Clone, truncate, compare
// =============================================================================

// IsBeforeIn compares the end of m's unit window against x: m is before x
// at month precision only once its whole month lies before x.
func (m *Moment) IsBeforeIn(x Instant, u Unit) (bool, error) {
	end, err := m.Clone().EndOf(u)
	if err != nil {
		return false, err
	}
	return end.IsBefore(x), nil
}

// IsAfterIn compares the start of m's unit window against x.
func (m *Moment) IsAfterIn(x Instant, u Unit) (bool, error) {
	start, err := m.Clone().StartOf(u)
	if err != nil {
		return false, err
	}
	return start.IsAfter(x), nil
}

// IsSameIn reports whether the unit windows of m and x start at the same
// instant. A *Moment is truncated in its own calendar; other instants are
// decomposed with m's calendar.
func (m *Moment) IsSameIn(x Instant, u Unit) (bool, error) {
	a, err := m.Clone().StartOf(u)
	if err != nil {
		return false, err
	}
	other, ok := x.(*Moment)
	if ok {
		other = other.Clone()
	} else {
		other = m.cal.FromInstant(x)
	}
	b, err := other.StartOf(u)
	if err != nil {
		return false, err
	}
	return a.IsSame(b), nil
}

// IsSameOrBeforeIn is IsBeforeIn or IsSameIn.
func (m *Moment) IsSameOrBeforeIn(x Instant, u Unit) (bool, error) {
	before, err := m.IsBeforeIn(x, u)
	if err != nil || before {
		return before, err
	}
	return m.IsSameIn(x, u)
}

// IsSameOrAfterIn is IsAfterIn or IsSameIn.
func (m *Moment) IsSameOrAfterIn(x Instant, u Unit) (bool, error) {
	after, err := m.IsAfterIn(x, u)
	if err != nil || after {
		return after, err
	}
	return m.IsSameIn(x, u)
}

// IsBetweenIn is IsAfterIn(from) and IsBeforeIn(to). Both ends are
// exclusive; the start of m's window is checked against from and its end
// against to.
func (m *Moment) IsBetweenIn(from, to Instant, u Unit) (bool, error) {
	after, err := m.IsAfterIn(from, u)
	if err != nil || !after {
		return false, err
	}
	return m.IsBeforeIn(to, u)
}

// =============================================================================
// AGGREGATES AND ORDERING
// =============================================================================

// Compare is the comparator adapter: it orders two moments by instant and
// can be passed to slices.SortFunc.
func Compare(a, b *Moment) int {
	return a.Compare(b)
}

// Sort orders moments ascending by instant. Equal instants keep their
// relative order.
func Sort(ms []*Moment) {
	slices.SortStableFunc(ms, Compare)
}

// Min returns the argument with the smallest instant. Nil entries are
// skipped; with nothing to choose from it returns Now().
func Min(ms ...*Moment) *Moment {
	return pick(ms, func(candidate, best *Moment) bool { return candidate.IsBefore(best) })
}

// Max returns the argument with the largest instant. Nil entries are
// skipped; with nothing to choose from it returns Now().
func Max(ms ...*Moment) *Moment {
	return pick(ms, func(candidate, best *Moment) bool { return candidate.IsAfter(best) })
}

func pick(ms []*Moment, better func(candidate, best *Moment) bool) *Moment {
	var best *Moment
	for _, m := range ms {
		if m == nil {
			continue
		}
		if best == nil || better(m, best) {
			best = m
		}
	}
	if best == nil {
		return Now()
	}
	return best
}

// =============================================================================
// LEAP YEARS
// =============================================================================

// IsLeapYear applies the proleptic Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// IsLeapYear reports whether the moment's year is a leap year.
func (m *Moment) IsLeapYear() bool {
	return IsLeapYear(m.Years())
}
