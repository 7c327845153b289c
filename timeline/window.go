package timeline

import (
	"github.com/warp/moment/moment"
)

// =============================================================================
// WINDOW - The unit period a moment falls into
// =============================================================================

// Window is the closed interval [Start, End] covering one unit period, e.g.
// all of March 2016 for a moment in March at Month precision.
type Window struct {
	Unit  moment.Unit
	Start *moment.Moment
	End   *moment.Moment
}

// WindowOf returns the unit window containing m. m is not modified.
func WindowOf(m *moment.Moment, u moment.Unit) (Window, error) {
	start, err := m.Clone().StartOf(u)
	if err != nil {
		return Window{}, err
	}
	end, err := m.Clone().EndOf(u)
	if err != nil {
		return Window{}, err
	}
	return Window{Unit: u, Start: start, End: end}, nil
}

// Contains returns true if i is within [Start, End].
func (w Window) Contains(i moment.Instant) bool {
	return w.Start.IsSameOrBefore(i) && w.End.IsSameOrAfter(i)
}

// Next returns the window following this one.
func (w Window) Next() Window {
	after := w.End.Clone()
	after.Add(1, moment.Millisecond)
	return w.around(after)
}

// Previous returns the window before this one.
func (w Window) Previous() Window {
	before := w.Start.Clone()
	before.Subtract(1, moment.Millisecond)
	return w.around(before)
}

// around rebuilds a window of the same unit. The unit was validated when w
// was built, so StartOf and EndOf cannot fail.
func (w Window) around(m *moment.Moment) Window {
	start, _ := m.Clone().StartOf(w.Unit)
	end, _ := m.EndOf(w.Unit)
	return Window{Unit: w.Unit, Start: start, End: end}
}

const windowLayout = "yyyy-MM-dd HH:mm:ss.SSS"

// String returns a string representation of the window.
func (w Window) String() string {
	return "[" + w.Start.MustFormat(windowLayout) + ", " + w.End.MustFormat(windowLayout) + "]"
}
