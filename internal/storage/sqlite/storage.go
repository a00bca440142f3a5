// Package sqlite provides the SQLite-backed command history journal.
// Only operator command outcomes are stored; order data never is.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	_ "modernc.org/sqlite"
)

// timeLayout keeps lexical and chronological order identical.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultMaxRecords bounds the journal size.
const DefaultMaxRecords = 1000

// Journal records finished commands in a SQLite database.
type Journal struct {
	mu         sync.Mutex
	db         *sql.DB
	maxRecords int
}

// NewJournal opens or creates the journal database at dbPath.
func NewJournal(dbPath string) (*Journal, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite journal: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite journal: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite journal: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, maxRecords: DefaultMaxRecords}
	if err := j.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// SetMaxRecords changes how many records are retained; n <= 0 keeps all.
func (j *Journal) SetMaxRecords(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.maxRecords = n
}

// Close closes the underlying SQLite connection.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

func (j *Journal) init() error {
	if _, err := j.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite journal: set busy timeout: %w", err)
	}
	if _, err := j.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite journal: create schema: %w", err)
	}
	return nil
}

// Record stores a finished command. Recording the same id twice updates the outcome.
func (j *Journal) Record(ctx context.Context, rec domain.CommandRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}

	finished := rec.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	started := rec.StartedAt
	if started.IsZero() {
		started = finished
	}

	_, err := j.db.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		rec.Kind.String(),
		rec.Target,
		rec.Phase.String(),
		rec.SyncedCount,
		rec.Error,
		formatTime(started),
		formatTime(finished),
	)
	if err != nil {
		return fmt.Errorf("sqlite journal: record command: %w", err)
	}

	if j.maxRecords > 0 {
		if _, err := j.db.ExecContext(ctx, pruneRecordsSQL, j.maxRecords); err != nil {
			return fmt.Errorf("sqlite journal: prune history: %w", err)
		}
	}
	return nil
}

// List returns up to limit records, most recently finished first.
// limit <= 0 returns everything retained.
func (j *Journal) List(ctx context.Context, limit int) ([]domain.CommandRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx, listRecordsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite journal: list history: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CommandRecord, 0)
	for rows.Next() {
		var (
			rec                 domain.CommandRecord
			kind, phase         string
			startedAt, finished string
		)
		if err := rows.Scan(&rec.ID, &kind, &rec.Target, &phase, &rec.SyncedCount, &rec.Error, &startedAt, &finished); err != nil {
			return nil, fmt.Errorf("sqlite journal: scan history: %w", err)
		}
		rec.Kind = domain.CommandKind(kind)
		rec.Phase = domain.CommandPhase(phase)
		if rec.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if rec.FinishedAt, err = parseTime(finished); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite journal: iterate history: %w", err)
	}
	return records, nil
}

func validateRecord(rec domain.CommandRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidRecord)
	}
	if !validKinds[rec.Kind.String()] {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, rec.Kind)
	}
	if strings.TrimSpace(rec.Target) == "" {
		return fmt.Errorf("%w: target cannot be empty", ErrInvalidRecord)
	}
	if !validPhases[rec.Phase.String()] {
		return fmt.Errorf("%w: phase %q is not terminal", ErrInvalidRecord, rec.Phase)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite journal: parse timestamp %q: %w", s, err)
	}
	return t, nil
}
