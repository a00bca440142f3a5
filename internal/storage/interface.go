// Package storage selects where the command history journal lives.
package storage

import (
	"context"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// HistoryStore records finished operator commands.
type HistoryStore interface {
	Record(ctx context.Context, rec domain.CommandRecord) error
	List(ctx context.Context, limit int) ([]domain.CommandRecord, error)
	Close() error
}
