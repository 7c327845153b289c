// Package store provides timeline.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/moment/timeline"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for tests and the CLI)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	marks []timeline.Mark // ascending by instant
	ids   map[string]bool
}

func NewMemory() *Memory {
	return &Memory{ids: make(map[string]bool)}
}

// Save adds a single mark.
func (m *Memory) Save(_ context.Context, mark timeline.Mark) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mark.At == nil {
		return &timeline.ValidationError{Field: "at", Msg: "is required"}
	}
	if m.ids[mark.ID] {
		return &timeline.DuplicateError{ID: mark.ID}
	}
	m.insertLocked(mark)
	return nil
}

// SaveBatch adds multiple marks atomically.
func (m *Memory) SaveBatch(_ context.Context, marks []timeline.Mark) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check every mark first so a bad one writes nothing
	seen := make(map[string]bool, len(marks))
	for _, mark := range marks {
		if mark.At == nil {
			return &timeline.ValidationError{Field: "at", Msg: "is required"}
		}
		if m.ids[mark.ID] || seen[mark.ID] {
			return &timeline.DuplicateError{ID: mark.ID}
		}
		seen[mark.ID] = true
	}

	for _, mark := range marks {
		m.insertLocked(mark)
	}
	return nil
}

func (m *Memory) insertLocked(mark timeline.Mark) {
	mark.At = mark.At.Clone()
	ms := mark.At.UnixMilli()

	// Binary search for the insertion point after equal instants
	i := sort.Search(len(m.marks), func(i int) bool {
		return m.marks[i].At.UnixMilli() > ms
	})

	m.marks = append(m.marks, timeline.Mark{})
	copy(m.marks[i+1:], m.marks[i:])
	m.marks[i] = mark
	m.ids[mark.ID] = true
}

func (m *Memory) Get(_ context.Context, id string) (timeline.Mark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mark := range m.marks {
		if mark.ID == id {
			return copyMark(mark), nil
		}
	}
	return timeline.Mark{}, &timeline.NotFoundError{ID: id}
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, mark := range m.marks {
		if mark.ID == id {
			m.marks = append(m.marks[:i], m.marks[i+1:]...)
			delete(m.ids, id)
			return nil
		}
	}
	return &timeline.NotFoundError{ID: id}
}

func (m *Memory) List(_ context.Context) ([]timeline.Mark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]timeline.Mark, len(m.marks))
	for i, mark := range m.marks {
		result[i] = copyMark(mark)
	}
	return result, nil
}

func (m *Memory) Range(_ context.Context, from, to int64) ([]timeline.Mark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := sort.Search(len(m.marks), func(i int) bool {
		return m.marks[i].At.UnixMilli() >= from
	})

	var result []timeline.Mark
	for _, mark := range m.marks[start:] {
		if mark.At.UnixMilli() > to {
			break
		}
		result = append(result, copyMark(mark))
	}
	return result, nil
}

// copyMark keeps callers from mutating stored moments.
func copyMark(mark timeline.Mark) timeline.Mark {
	mark.At = mark.At.Clone()
	return mark
}
