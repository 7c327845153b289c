/*
Package sqlite provides a SQLite-backed implementation of timeline.Store.

PURPOSE:
  Persists marks in a single table. Instants are stored as epoch
  milliseconds through moment.Moment's driver.Valuer / sql.Scanner, so
  range queries are plain integer comparisons and ordering never depends
  on text collation.

KEY TABLES:
  marks: id, name, at_ms, zone, note, created_at

INDEXES:
  - idx_marks_at: Range and List ordering (hot path)

ZONES:
  The zone column keeps the IANA name of the location a mark was recorded
  in. Marks are re-expressed in that location on load when it can be
  resolved, and in UTC otherwise. The timeline service converts to its
  own calendar anyway; the zone is informational.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. ":memory:" databases are pinned
  to one connection so every query sees the same database.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/marks.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  cal, _ := cfg.MomentCalendar()
  tl := timeline.New(store, cal)

SEE ALSO:
  - timeline/store.go: Interface definition
  - timeline/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/moment/moment"
	"github.com/warp/moment/timeline"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Store implements timeline.Store using SQLite.
type Store struct {
	db *sqlx.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open(DriverName, dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS marks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		at_ms INTEGER NOT NULL,
		zone TEXT NOT NULL DEFAULT 'UTC',
		note TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_marks_at ON marks(at_ms)`,
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// ROW MODEL
// =============================================================================

type markRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	At        moment.Moment  `db:"at_ms"`
	Zone      string         `db:"zone"`
	Note      sql.NullString `db:"note"`
	CreatedAt string         `db:"created_at"`
}

func (r markRow) convert() timeline.Mark {
	loc, err := time.LoadLocation(r.Zone)
	if err != nil {
		loc = time.UTC
	}
	created, _ := time.Parse(time.RFC3339Nano, r.CreatedAt)
	return timeline.Mark{
		ID:        r.ID,
		Name:      r.Name,
		At:        moment.Calendar{Location: loc}.FromInstant(&r.At),
		Note:      r.Note.String,
		CreatedAt: created,
	}
}

// =============================================================================
// MARK STORE (timeline.Store interface)
// =============================================================================

// Save adds a mark.
func (s *Store) Save(ctx context.Context, mark timeline.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(ctx, s.db, mark)
}

func (s *Store) insert(ctx context.Context, db sqlx.ExecerContext, mark timeline.Mark) error {
	if mark.At == nil {
		return &timeline.ValidationError{Field: "at", Msg: "is required"}
	}
	createdAt := mark.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO marks (id, name, at_ms, zone, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		mark.ID,
		mark.Name,
		mark.At,
		mark.At.Time().Location().String(),
		nullString(mark.Note),
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return &timeline.DuplicateError{ID: mark.ID}
		}
		return fmt.Errorf("failed to save mark: %w", err)
	}
	return nil
}

// SaveBatch adds multiple marks atomically.
func (s *Store) SaveBatch(ctx context.Context, marks []timeline.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mark := range marks {
		if err := s.insert(ctx, tx, mark); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns a mark by ID.
func (s *Store) Get(ctx context.Context, id string) (timeline.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var row markRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, at_ms, zone, note, created_at
		FROM marks
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return timeline.Mark{}, &timeline.NotFoundError{ID: id}
	}
	if err != nil {
		return timeline.Mark{}, fmt.Errorf("failed to get mark: %w", err)
	}
	return row.convert(), nil
}

// Delete removes a mark by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM marks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mark: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &timeline.NotFoundError{ID: id}
	}
	return nil
}

// List returns every mark ascending by instant.
func (s *Store) List(ctx context.Context) ([]timeline.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.query(ctx, `
		SELECT id, name, at_ms, zone, note, created_at
		FROM marks
		ORDER BY at_ms ASC, rowid ASC
	`)
}

// Range returns marks with from <= at_ms <= to.
func (s *Store) Range(ctx context.Context, from, to int64) ([]timeline.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.query(ctx, `
		SELECT id, name, at_ms, zone, note, created_at
		FROM marks
		WHERE at_ms >= ? AND at_ms <= ?
		ORDER BY at_ms ASC, rowid ASC
	`, from, to)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]timeline.Mark, error) {
	var rows []markRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query marks: %w", err)
	}

	marks := make([]timeline.Mark, len(rows))
	for i, r := range rows {
		marks[i] = r.convert()
	}
	return marks, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
