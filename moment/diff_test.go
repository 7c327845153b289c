package moment_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/moment/moment"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		unit moment.Unit
		want string
	}{
		{"whole month", "2016-02-15 00:00:00.000", "2016-01-15 00:00:00.000", moment.Month, "1"},
		{"negative month", "2016-01-15 00:00:00.000", "2016-02-15 00:00:00.000", moment.Month, "-1"},
		{"year", "2017-03-15 00:00:00.000", "2016-03-15 00:00:00.000", moment.Year, "1"},
		{"half year", "2016-07-15 00:00:00.000", "2016-01-15 00:00:00.000", moment.Year, "0.5"},
		{"days with fraction", "2016-03-16 12:00:00.000", "2016-03-15 00:00:00.000", moment.DayOfMonth, "1.5"},
		{"weeks", "2016-03-29 00:00:00.000", "2016-03-15 00:00:00.000", moment.WeekOfYear, "2"},
		{"hours", "2016-03-16 12:00:00.000", "2016-03-15 00:00:00.000", moment.HourOfDay, "36"},
		{"minutes", "2016-03-15 00:01:30.000", "2016-03-15 00:00:00.000", moment.Minute, "1.5"},
		{"seconds", "2016-03-15 00:00:00.250", "2016-03-15 00:00:00.000", moment.Second, "0.25"},
		{"milliseconds", "2016-03-15 00:00:00.000", "2016-03-15 00:00:00.250", moment.Millisecond, "-250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := at(t, tt.from).Diff(at(t, tt.to), tt.unit)

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDiff_MonthInterpolation(t *testing.T) {
	// GIVEN: Jan 15 and Feb 29 of a leap year
	// WHEN: diffing in months
	// THEN: one month plus 14 of the 31 days between Dec 29 and Jan 29

	got, err := at(t, "2016-02-29 00:00:00.000").Diff(at(t, "2016-01-15 00:00:00.000"), moment.Month)
	require.NoError(t, err)

	want := decimal.NewFromInt(1).Add(decimal.NewFromInt(14).Div(decimal.NewFromInt(31)))
	assert.True(t, got.Sub(want).Abs().LessThan(decimal.New(1, -12)), "got %s want %s", got, want)
}

func TestDiff_UnknownUnit(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	_, err := m.Diff(m, moment.Era)
	assert.True(t, errors.Is(err, moment.ErrInvalidArgument))
}
