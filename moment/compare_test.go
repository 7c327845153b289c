package moment_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/moment/moment"
)

// =============================================================================
// INSTANT COMPARISONS
// =============================================================================

func TestCompare_InstantShapes(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")
	later := at(t, "2016-03-20 00:00:00.000")

	assert.True(t, m.IsBefore(later))
	assert.True(t, m.IsBefore(later.Time()))
	assert.True(t, m.IsBefore(moment.EpochMillis(later.UnixMilli())))
	assert.False(t, m.IsAfter(later))
	assert.True(t, later.IsAfter(m))

	assert.True(t, m.IsSame(m.Clone()))
	assert.True(t, m.IsSame(moment.EpochMillis(1458084972532)))
	assert.True(t, m.IsSameOrBefore(m.Clone()))
	assert.True(t, m.IsSameOrAfter(m.Clone()))
	assert.True(t, m.IsSameOrBefore(later))
	assert.False(t, m.IsSameOrAfter(later))
}

func TestIsBetween_Exclusive(t *testing.T) {
	from := at(t, "2016-03-01 00:00:00.000")
	to := at(t, "2016-04-01 00:00:00.000")

	assert.True(t, at(t, "2016-03-15 23:36:12.532").IsBetween(from, to))
	assert.False(t, from.Clone().IsBetween(from, to))
	assert.False(t, to.Clone().IsBetween(from, to))
}

func TestCompare_ConsistentWithPredicates(t *testing.T) {
	values := []*moment.Moment{
		at(t, "2016-03-15 23:36:12.532"),
		at(t, "2016-03-15 23:36:12.533"),
		at(t, "1969-12-31 23:59:59.999"),
		at(t, "2016-03-15 23:36:12.532"),
	}

	for _, a := range values {
		for _, b := range values {
			c := moment.Compare(a, b)
			assert.Equal(t, c < 0, a.IsBefore(b))
			assert.Equal(t, c > 0, a.IsAfter(b))
			assert.Equal(t, c == 0, a.IsSame(b))
			assert.Equal(t, -c, moment.Compare(b, a))
		}
	}
}

func TestEqualAndHash_ByInstantOnly(t *testing.T) {
	// GIVEN: the same instant decomposed in two different zones
	// WHEN: comparing
	// THEN: equal, with equal hashes

	plus2 := moment.Calendar{Location: time.FixedZone("UTC+2", 2*60*60)}
	a := utc.FromEpochMillis(1458084972532)
	b := plus2.FromEpochMillis(1458084972532)

	assert.NotEqual(t, a.Hours(), b.Hours())
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b.SetMilliseconds(0)
	assert.False(t, a.Equal(b))
}

// =============================================================================
// UNIT PRECISION
// =============================================================================

func TestIsBeforeIn_UsesEndOfWindow(t *testing.T) {
	// GIVEN: a moment in March
	// WHEN: comparing at month precision
	// THEN: it is before x only once all of March lies before x

	m := at(t, "2016-03-15 23:36:12.532")

	before, err := m.IsBeforeIn(at(t, "2016-03-20 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.False(t, before)

	before, err = m.IsBeforeIn(at(t, "2016-04-01 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.True(t, before)

	before, err = m.IsBeforeIn(at(t, "2016-03-31 23:59:59.999"), moment.Month)
	require.NoError(t, err)
	assert.False(t, before)
}

func TestIsAfterIn_UsesStartOfWindow(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	after, err := m.IsAfterIn(at(t, "2016-03-01 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.False(t, after)

	after, err = m.IsAfterIn(at(t, "2016-02-29 23:59:59.999"), moment.Month)
	require.NoError(t, err)
	assert.True(t, after)
}

func TestIsSameIn(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	tests := []struct {
		other string
		unit  moment.Unit
		want  bool
	}{
		{"2016-03-31 23:59:59.999", moment.Month, true},
		{"2016-04-01 00:00:00.000", moment.Month, false},
		{"2016-12-01 00:00:00.000", moment.Year, true},
		{"2016-03-19 10:00:00.000", moment.WeekOfYear, true},
		{"2016-03-20 10:00:00.000", moment.WeekOfYear, false},
		{"2016-03-15 00:00:00.000", moment.DayOfMonth, true},
		{"2016-03-15 23:59:59.999", moment.HourOfDay, true},
		{"2016-03-15 23:36:12.999", moment.Second, true},
		{"2016-03-15 23:36:12.999", moment.Millisecond, false},
	}

	for _, tt := range tests {
		got, err := m.IsSameIn(at(t, tt.other), tt.unit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s at %s", tt.other, tt.unit)
	}
}

func TestIsSameIn_EquivalenceRelation(t *testing.T) {
	a := at(t, "2016-03-01 00:00:00.000")
	b := at(t, "2016-03-15 23:36:12.532")
	c := at(t, "2016-03-31 23:59:59.999")
	all := []*moment.Moment{a, b, c}

	for _, x := range all {
		same, err := x.IsSameIn(x, moment.Month)
		require.NoError(t, err)
		assert.True(t, same, "reflexive")

		for _, y := range all {
			xy, _ := x.IsSameIn(y, moment.Month)
			yx, _ := y.IsSameIn(x, moment.Month)
			assert.Equal(t, xy, yx, "symmetric")
		}
	}

	ab, _ := a.IsSameIn(b, moment.Month)
	bc, _ := b.IsSameIn(c, moment.Month)
	ac, _ := a.IsSameIn(c, moment.Month)
	assert.True(t, ab && bc && ac, "transitive")
}

func TestIsSameIn_MixedCalendarsAreSymmetric(t *testing.T) {
	// GIVEN: two moments two hours apart, one in UTC and one in New York
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	utc := moment.Calendar{Location: time.UTC}.FromTime(time.Date(2016, time.March, 15, 3, 0, 0, 0, time.UTC))
	ny := moment.Calendar{Location: newYork}.FromTime(time.Date(2016, time.March, 15, 5, 0, 0, 0, time.UTC))

	// WHEN: comparing at day precision in both directions
	ab, err := utc.IsSameIn(ny, moment.DayOfMonth)
	require.NoError(t, err)
	ba, err := ny.IsSameIn(utc, moment.DayOfMonth)
	require.NoError(t, err)

	// THEN: each side truncates in its own zone, so the days start at
	// different instants and both directions agree
	assert.False(t, ab)
	assert.False(t, ba)

	before, err := ny.IsSameOrBeforeIn(utc, moment.DayOfMonth)
	require.NoError(t, err)
	after, err := utc.IsSameOrAfterIn(ny, moment.DayOfMonth)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Raw instants still take the receiver's calendar.
	same, err := ny.IsSameIn(moment.EpochMillis(ny.UnixMilli()+3600_000), moment.DayOfMonth)
	require.NoError(t, err)
	assert.True(t, same)
}

func TestIsSameOrBeforeIn_IsSameOrAfterIn(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")
	sameMonth := at(t, "2016-03-02 00:00:00.000")

	ok, err := m.IsSameOrBeforeIn(sameMonth, moment.Month)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.IsSameOrAfterIn(sameMonth, moment.Month)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.IsSameOrAfterIn(at(t, "2016-04-02 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsBetweenIn(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	inside, err := m.IsBetweenIn(at(t, "2016-02-15 00:00:00.000"), at(t, "2016-04-15 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.True(t, inside)

	// The end of March is checked against to, so a bound inside March fails.
	inside, err = m.IsBetweenIn(at(t, "2016-02-15 00:00:00.000"), at(t, "2016-03-20 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.False(t, inside)

	// The start of March is checked against from.
	inside, err = m.IsBetweenIn(at(t, "2016-03-10 00:00:00.000"), at(t, "2016-04-15 00:00:00.000"), moment.Month)
	require.NoError(t, err)
	assert.False(t, inside)
}

func TestPrecisionComparisons_DoNotMutate(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")
	x := at(t, "2016-03-20 00:00:00.000")

	_, _ = m.IsBeforeIn(x, moment.Year)
	_, _ = m.IsAfterIn(x, moment.Year)
	_, _ = m.IsSameIn(x, moment.Year)
	_, _ = m.IsBetweenIn(x, x, moment.Year)

	assert.Equal(t, "2016-03-15 23:36:12.532", render(t, m))
	assert.Equal(t, "2016-03-20 00:00:00.000", render(t, x))
}

func TestPrecisionComparisons_RejectEra(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	_, err := m.IsSameIn(m, moment.Era)
	assert.True(t, errors.Is(err, moment.ErrInvalidArgument))

	_, err = m.IsBeforeIn(m, moment.AmPm)
	assert.True(t, errors.Is(err, moment.ErrInvalidArgument))
}

// =============================================================================
// AGGREGATES
// =============================================================================

func TestMinMax_ReturnArgument(t *testing.T) {
	a := at(t, "2016-03-15 23:36:12.532")
	b := at(t, "2015-01-01 00:00:00.000")
	c := at(t, "2038-04-21 22:12:32.321")

	assert.Same(t, b, moment.Min(a, b, c))
	assert.Same(t, c, moment.Max(a, b, c))
	assert.Same(t, a, moment.Min(a))
	assert.Same(t, b, moment.Min(nil, b, nil))
}

func TestMinMax_EmptyIsNow(t *testing.T) {
	// GIVEN: no arguments
	// WHEN: Min and Max
	// THEN: a fresh moment between two Now() snapshots

	before := moment.Now()
	minimum := moment.Min()
	maximum := moment.Max()
	var none []*moment.Moment
	fromNil := moment.Max(none...)
	after := moment.Now()

	for _, m := range []*moment.Moment{minimum, maximum, fromNil} {
		assert.True(t, m.IsSameOrAfter(before))
		assert.True(t, m.IsSameOrBefore(after))
	}
	assert.NotSame(t, minimum, maximum)
}

func TestSort(t *testing.T) {
	a := at(t, "2016-03-15 23:36:12.532")
	b := at(t, "2015-01-01 00:00:00.000")
	c := at(t, "2038-04-21 22:12:32.321")
	ms := []*moment.Moment{a, b, c}

	moment.Sort(ms)

	assert.Equal(t, []*moment.Moment{b, a, c}, ms)
}

// =============================================================================
// LEAP YEARS
// =============================================================================

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1900, false},
		{2000, true},
		{2004, true},
		{2100, false},
		{2023, false},
		{2016, true},
		{0, true},
		{-4, true},
		{-100, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, moment.IsLeapYear(tt.year), "year %d", tt.year)
	}

	assert.True(t, at(t, "2016-03-15 23:36:12.532").IsLeapYear())
	assert.False(t, at(t, "2100-03-15 23:36:12.532").IsLeapYear())
}
