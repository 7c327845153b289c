/*
store.go - Persistence interface for marks

PURPOSE:
  Defines the boundary between the timeline service and storage. A Store
  keeps marks keyed by ID and answers instant range queries. Calendar
  logic (windows, precision comparisons, grouping) stays in the service;
  stores only ever compare epoch milliseconds.

ORDERING:
  List and Range return marks ascending by instant. Marks on the same
  instant keep insertion order.

ATOMIC BATCHES:
  SaveBatch is all-or-nothing. If any ID in the batch already exists (or
  repeats within the batch) nothing is written.

IMPLEMENTATIONS:
  - timeline/store/memory.go: In-memory for tests and the CLI
  - store/sqlite/sqlite.go:   SQLite

EXAMPLE:
  s := sqlite.New("./marks.db")
  err := s.Save(ctx, mark)
  if errors.Is(err, timeline.ErrDuplicateMark) {
      // already stored
  }
*/
package timeline

import "context"

// Store persists marks.
type Store interface {
	// Save persists one mark. Fails with ErrDuplicateMark if the ID exists.
	Save(ctx context.Context, mark Mark) error

	// SaveBatch persists marks atomically.
	SaveBatch(ctx context.Context, marks []Mark) error

	// Get returns the mark with the given ID or ErrMarkNotFound.
	Get(ctx context.Context, id string) (Mark, error)

	// Delete removes a mark. Fails with ErrMarkNotFound if it is absent.
	Delete(ctx context.Context, id string) error

	// List returns every mark, ascending by instant.
	List(ctx context.Context) ([]Mark, error)

	// Range returns marks with from <= instant <= to (epoch milliseconds),
	// ascending by instant.
	Range(ctx context.Context, from, to int64) ([]Mark, error)
}
