package storage

import (
	"context"
	"sync"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// MemoryHistory keeps history for the current process only. It backs the
// journal when SQLite is unavailable and when history is disabled.
type MemoryHistory struct {
	mu      sync.Mutex
	records []domain.CommandRecord
	max     int
}

var _ HistoryStore = (*MemoryHistory)(nil)

// NewMemoryHistory creates a store retaining at most max records; max <= 0 retains none.
func NewMemoryHistory(max int) *MemoryHistory {
	return &MemoryHistory{max: max}
}

func (m *MemoryHistory) Record(_ context.Context, rec domain.CommandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		return nil
	}
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = rec
			return nil
		}
	}
	m.records = append(m.records, rec)
	if len(m.records) > m.max {
		m.records = m.records[len(m.records)-m.max:]
	}
	return nil
}

// List returns newest first.
func (m *MemoryHistory) List(_ context.Context, limit int) ([]domain.CommandRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.CommandRecord, 0, n)
	for i := len(m.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *MemoryHistory) Close() error { return nil }
