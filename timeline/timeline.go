/*
timeline.go - Named marks on a timeline

PURPOSE:
  A Timeline records named instants (marks) and answers calendar questions
  about them: which marks fall between two moments at a given precision,
  which fall into a unit window, how they group by day, week or month,
  and which is earliest or latest.

CALENDAR:
  Stores only know epoch milliseconds. Every calendar decision (window
  boundaries, week start, precision comparisons) is made with the
  Timeline's Calendar, so the same store answers differently for a
  Europe/Paris timeline and a UTC one.

EXAMPLE:
  tl := timeline.New(store.NewMemory(), moment.ISO(time.UTC))
  tl.Add(ctx, "release", moment.Now(), "")
  groups, _ := tl.GroupBy(ctx, moment.WeekOfYear)

SEE ALSO:
  - window.go: unit windows
  - store.go:  persistence interface
*/
package timeline

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warp/moment/moment"
)

// Mark is a named instant.
type Mark struct {
	ID        string
	Name      string
	At        *moment.Moment
	Note      string
	CreatedAt time.Time
}

// Group is one unit window and the marks inside it.
type Group struct {
	Window Window
	Marks  []Mark
}

// Timeline is the mark service.
type Timeline struct {
	store Store
	cal   moment.Calendar
	now   func() time.Time
}

// New creates a timeline over store, deciding calendar questions with cal.
func New(store Store, cal moment.Calendar) *Timeline {
	return &Timeline{store: store, cal: cal, now: time.Now}
}

// Calendar returns the calendar the timeline decomposes marks with.
func (tl *Timeline) Calendar() moment.Calendar {
	return tl.cal
}

// =============================================================================
// WRITES
// =============================================================================

// Add records a new mark at the instant of at.
func (tl *Timeline) Add(ctx context.Context, name string, at moment.Instant, note string) (Mark, error) {
	mark, err := tl.prepare(Mark{Name: name, Note: note}, at)
	if err != nil {
		return Mark{}, err
	}
	if err := tl.store.Save(ctx, mark); err != nil {
		return Mark{}, err
	}
	return mark, nil
}

// Import records several marks atomically. Marks without an ID get one.
func (tl *Timeline) Import(ctx context.Context, marks []Mark) ([]Mark, error) {
	prepared := make([]Mark, 0, len(marks))
	for _, m := range marks {
		var at moment.Instant
		if m.At != nil {
			at = m.At
		}
		p, err := tl.prepare(m, at)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, p)
	}
	if err := tl.store.SaveBatch(ctx, prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}

func (tl *Timeline) prepare(m Mark, at moment.Instant) (Mark, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return Mark{}, &ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if mm, ok := at.(*moment.Moment); at == nil || (ok && mm == nil) {
		return Mark{}, &ValidationError{Field: "at", Msg: "is required"}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.At = tl.cal.FromInstant(at)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = tl.now().UTC()
	}
	return m, nil
}

// Remove deletes a mark by ID.
func (tl *Timeline) Remove(ctx context.Context, id string) error {
	return tl.store.Delete(ctx, id)
}

// =============================================================================
// READS
// =============================================================================

// Get returns a mark by ID.
func (tl *Timeline) Get(ctx context.Context, id string) (Mark, error) {
	m, err := tl.store.Get(ctx, id)
	if err != nil {
		return Mark{}, err
	}
	return tl.local(m), nil
}

// Marks returns every mark in instant order.
func (tl *Timeline) Marks(ctx context.Context) ([]Mark, error) {
	marks, err := tl.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range marks {
		marks[i] = tl.local(marks[i])
	}
	sortMarks(marks)
	return marks, nil
}

// Between returns marks strictly between from and to. With a unit, the
// comparison is made at that precision (see moment.IsBetweenIn); with the
// zero unit it compares instants.
func (tl *Timeline) Between(ctx context.Context, from, to moment.Instant, u moment.Unit) ([]Mark, error) {
	if u != 0 && !u.Truncatable() {
		return nil, &moment.ArgumentError{Op: "Between", Msg: "unknown unit: " + u.String()}
	}
	marks, err := tl.Marks(ctx)
	if err != nil {
		return nil, err
	}

	var result []Mark
	for _, m := range marks {
		inside := m.At.IsBetween(from, to)
		if u != 0 {
			if inside, err = m.At.IsBetweenIn(from, to, u); err != nil {
				return nil, err
			}
		}
		if inside {
			result = append(result, m)
		}
	}
	return result, nil
}

// In returns the marks inside a window, bounds included.
func (tl *Timeline) In(ctx context.Context, w Window) ([]Mark, error) {
	marks, err := tl.store.Range(ctx, w.Start.UnixMilli(), w.End.UnixMilli())
	if err != nil {
		return nil, err
	}
	for i := range marks {
		marks[i] = tl.local(marks[i])
	}
	return marks, nil
}

// GroupBy buckets marks by the unit window they fall into, in window order.
// Empty windows are omitted.
func (tl *Timeline) GroupBy(ctx context.Context, u moment.Unit) ([]Group, error) {
	if !u.Truncatable() {
		return nil, &moment.ArgumentError{Op: "GroupBy", Msg: "unknown unit: " + u.String()}
	}
	marks, err := tl.Marks(ctx)
	if err != nil {
		return nil, err
	}

	var groups []Group
	for _, m := range marks {
		if n := len(groups); n > 0 && groups[n-1].Window.Contains(m.At) {
			groups[n-1].Marks = append(groups[n-1].Marks, m)
			continue
		}
		w, err := WindowOf(m.At, u)
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{Window: w, Marks: []Mark{m}})
	}
	return groups, nil
}

// Earliest returns the mark with the smallest instant.
func (tl *Timeline) Earliest(ctx context.Context) (Mark, error) {
	return tl.extreme(ctx, moment.Min)
}

// Latest returns the mark with the largest instant.
func (tl *Timeline) Latest(ctx context.Context) (Mark, error) {
	return tl.extreme(ctx, moment.Max)
}

func (tl *Timeline) extreme(ctx context.Context, choose func(...*moment.Moment) *moment.Moment) (Mark, error) {
	marks, err := tl.Marks(ctx)
	if err != nil {
		return Mark{}, err
	}
	if len(marks) == 0 {
		return Mark{}, ErrMarkNotFound
	}

	instants := make([]*moment.Moment, len(marks))
	for i := range marks {
		instants[i] = marks[i].At
	}
	chosen := choose(instants...)
	for _, m := range marks {
		if m.At == chosen {
			return m, nil
		}
	}
	return Mark{}, ErrMarkNotFound
}

// local re-expresses a stored mark in the timeline's calendar.
func (tl *Timeline) local(m Mark) Mark {
	if m.At != nil {
		m.At = tl.cal.FromInstant(m.At)
	}
	return m
}

func sortMarks(marks []Mark) {
	slices.SortStableFunc(marks, func(a, b Mark) int { return moment.Compare(a.At, b.At) })
}
