package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "history.db")
	j, err := NewJournal(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, j.Close())
	})

	return j
}

func record(id string, kind domain.CommandKind, target string, phase domain.CommandPhase, finished time.Time) domain.CommandRecord {
	return domain.CommandRecord{
		ID:         id,
		Kind:       kind,
		Target:     target,
		Phase:      phase,
		StartedAt:  finished.Add(-250 * time.Millisecond),
		FinishedAt: finished,
	}
}

func TestNewJournalRequiresPath(t *testing.T) {
	_, err := NewJournal("  ")
	require.Error(t, err)
}

func TestRecordAndList(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	sync := record("c1", domain.CommandSync, "amazon", domain.PhaseSucceeded, base)
	sync.SyncedCount = 3
	retry := record("c2", domain.CommandRetry, "SHO-1001", domain.PhaseFailed, base.Add(time.Second))
	retry.Error = "retry SHO-1001 rejected: order is not in failed state"

	require.NoError(t, j.Record(ctx, sync))
	require.NoError(t, j.Record(ctx, retry))

	records, err := j.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "c2", records[0].ID)
	assert.Equal(t, domain.CommandRetry, records[0].Kind)
	assert.Equal(t, domain.PhaseFailed, records[0].Phase)
	assert.Equal(t, retry.Error, records[0].Error)

	assert.Equal(t, "c1", records[1].ID)
	assert.Equal(t, 3, records[1].SyncedCount)
	assert.True(t, base.Equal(records[1].FinishedAt))
	assert.Equal(t, 250*time.Millisecond, records[1].Duration())
}

func TestListLimit(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(ctx, record(fmt.Sprintf("c%d", i), domain.CommandSync, "shopify", domain.PhaseSucceeded, base.Add(time.Duration(i)*time.Second))))
	}

	records, err := j.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c4", records[0].ID)
	assert.Equal(t, "c3", records[1].ID)

	all, err := j.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRecordSameIDUpdates(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, j.Record(ctx, record("c1", domain.CommandSync, "amazon", domain.PhaseFailed, now)))
	require.NoError(t, j.Record(ctx, record("c1", domain.CommandSync, "amazon", domain.PhaseSucceeded, now)))

	records, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.PhaseSucceeded, records[0].Phase)
}

func TestRecordPrunesToMaxRecords(t *testing.T) {
	j := newTestJournal(t)
	j.SetMaxRecords(3)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 6; i++ {
		require.NoError(t, j.Record(ctx, record(fmt.Sprintf("c%d", i), domain.CommandRetry, "X", domain.PhaseSucceeded, base.Add(time.Duration(i)*time.Second))))
	}

	records, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c5", records[0].ID)
	assert.Equal(t, "c3", records[2].ID)
}

func TestRecordValidation(t *testing.T) {
	j := newTestJournal(t)
	now := time.Now()

	tests := []struct {
		name string
		rec  domain.CommandRecord
	}{
		{"empty id", record("", domain.CommandSync, "amazon", domain.PhaseSucceeded, now)},
		{"unknown kind", record("c1", "refund", "amazon", domain.PhaseSucceeded, now)},
		{"empty target", record("c1", domain.CommandSync, "", domain.PhaseSucceeded, now)},
		{"in flight", record("c1", domain.CommandSync, "amazon", domain.PhaseInFlight, now)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := j.Record(context.Background(), tt.rec)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestUseAfterClose(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	assert.ErrorIs(t, j.Record(context.Background(), record("c1", domain.CommandSync, "a", domain.PhaseSucceeded, time.Now())), ErrClosed)
	_, err = j.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	j, err := NewJournal(dbPath)
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), record("c1", domain.CommandSync, "amazon", domain.PhaseSucceeded, time.Now())))
	require.NoError(t, j.Close())

	reopened, err := NewJournal(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
