package moment

import (
	"github.com/shopspring/decimal"
)

var (
	decMsPerSecond = decimal.NewFromInt(1000)
	decMsPerMinute = decimal.NewFromInt(60 * 1000)
	decMsPerHour   = decimal.NewFromInt(60 * 60 * 1000)
	msPerDay       = decimal.NewFromInt(24 * 60 * 60 * 1000)
	msPerWeek      = decimal.NewFromInt(7 * 24 * 60 * 60 * 1000)
	twelve         = decimal.NewFromInt(12)
)

// Diff returns m - x expressed in u, with the fraction kept.
//
// Months and years interpolate between the two month anchors around x, so
// Jan 15 to Feb 15 is exactly one month whatever the month lengths. Days and
// weeks compare wall clocks, ignoring offset changes in between. Hours and
// finer divide the elapsed milliseconds.
func (m *Moment) Diff(x Instant, u Unit) (decimal.Decimal, error) {
	other := m.cal.FromInstant(x)

	switch u {
	case Year:
		return monthDiff(m, other).Div(twelve), nil
	case Month:
		return monthDiff(m, other), nil
	case WeekOfYear, WeekOfMonth, DayOfWeekInMonth:
		return wallDiff(m, other).Div(msPerWeek), nil
	case DayOfMonth, DayOfYear, DayOfWeek:
		return wallDiff(m, other).Div(msPerDay), nil
	case Hour, HourOfDay:
		return elapsed(m, other).Div(decMsPerHour), nil
	case Minute:
		return elapsed(m, other).Div(decMsPerMinute), nil
	case Second:
		return elapsed(m, other).Div(decMsPerSecond), nil
	case Millisecond:
		return elapsed(m, other), nil
	}
	return decimal.Zero, unknownUnit("Diff", u)
}

func elapsed(a, b *Moment) decimal.Decimal {
	return decimal.NewFromInt(a.UnixMilli() - b.UnixMilli())
}

// wallDiff removes the offset change between a and b from the elapsed time.
func wallDiff(a, b *Moment) decimal.Decimal {
	_, offsetA := a.t.Zone()
	_, offsetB := b.t.Zone()
	delta := int64(offsetB-offsetA) * 1000
	return decimal.NewFromInt(a.UnixMilli() - b.UnixMilli() - delta)
}

// monthDiff returns a - b in months.
func monthDiff(a, b *Moment) decimal.Decimal {
	whole := (b.Years()-a.Years())*12 + (b.Months() - a.Months())
	anchor := a.Clone().addMonths(whole)

	var adjust decimal.Decimal
	offset := b.UnixMilli() - anchor.UnixMilli()
	if offset < 0 {
		previous := a.Clone().addMonths(whole - 1)
		adjust = decimal.NewFromInt(offset).Div(decimal.NewFromInt(anchor.UnixMilli() - previous.UnixMilli()))
	} else {
		next := a.Clone().addMonths(whole + 1)
		adjust = decimal.NewFromInt(offset).Div(decimal.NewFromInt(next.UnixMilli() - anchor.UnixMilli()))
	}
	return decimal.NewFromInt(int64(whole)).Add(adjust).Neg()
}
