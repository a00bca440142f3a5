package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
)

type fakeHistoryClient struct {
	history storage.HistoryStore
}

func (f *fakeHistoryClient) OpenHistory() (storage.HistoryStore, error) {
	return f.history, nil
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(nil, &buf))
	assert.Equal(t, "No commands recorded\n", buf.String())
}

func TestHistoryCommandListsNewestFirst(t *testing.T) {
	history := storage.NewMemoryHistory(10)
	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, history.Record(context.Background(), domain.CommandRecord{
		ID: "a", Kind: domain.CommandSync, Target: "amazon", Phase: domain.PhaseSucceeded,
		SyncedCount: 3, StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond),
	}))
	require.NoError(t, history.Record(context.Background(), domain.CommandRecord{
		ID: "b", Kind: domain.CommandRetry, Target: "SHO-1", Phase: domain.PhaseFailed,
		Error: "order is not failed", StartedAt: start.Add(time.Minute), FinishedAt: start.Add(time.Minute + time.Second),
	}))

	out, err := execute(NewHistoryCmd(&fakeHistoryClient{history: history}), "--limit", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "FINISHED")
	assert.Contains(t, out, "3 synced")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "order is not failed")
	assert.Less(t, strings.Index(out, "SHO-1"), strings.Index(out, "amazon"))
}

func TestHistoryCommandLimit(t *testing.T) {
	history := storage.NewMemoryHistory(10)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, history.Record(context.Background(), domain.CommandRecord{
			ID: id, Kind: domain.CommandSync, Target: "channel-" + id, Phase: domain.PhaseSucceeded,
		}))
	}

	out, err := execute(NewHistoryCmd(&fakeHistoryClient{history: history}), "--limit", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "channel-c")
	assert.NotContains(t, out, "channel-a")
}
