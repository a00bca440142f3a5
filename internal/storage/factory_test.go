package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage/sqlite"
)

func loadConfig(t *testing.T, env map[string]string) {
	t.Helper()
	configDir := t.TempDir()
	t.Setenv("ORDER_SYNC_CONFIG_DIR", configDir)
	t.Setenv("ORDER_SYNC_CONFIG_PATH", filepath.Join(configDir, "config.toml"))
	for k, v := range env {
		t.Setenv(k, v)
	}
	config.Load()
}

func TestNewHistoryFromConfigOpensSQLite(t *testing.T) {
	stateDir := t.TempDir()
	loadConfig(t, map[string]string{"ORDER_SYNC_STATE_DIR": stateDir})

	store, err := NewHistoryFromConfig()
	require.NoError(t, err)
	defer store.Close()

	require.IsType(t, &sqlite.Journal{}, store)
	_, err = os.Stat(filepath.Join(stateDir, historyDBFileName))
	assert.NoError(t, err)
}

func TestNewHistoryFromConfigDisabled(t *testing.T) {
	loadConfig(t, map[string]string{
		"ORDER_SYNC_STATE_DIR":       t.TempDir(),
		"ORDER_SYNC_HISTORY_ENABLED": "false",
	})

	store, err := NewHistoryFromConfig()
	require.NoError(t, err)

	require.NoError(t, store.Record(context.Background(), domain.CommandRecord{ID: "c1"}))
	records, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewHistoryFromConfigFallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	loadConfig(t, map[string]string{"ORDER_SYNC_STATE_DIR": filepath.Join(blocker, "state")})

	store, err := NewHistoryFromConfig()
	require.NoError(t, err)

	assert.IsType(t, &MemoryHistory{}, store)
}

func TestMemoryHistory(t *testing.T) {
	m := NewMemoryHistory(2)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, m.Record(ctx, domain.CommandRecord{ID: "a", FinishedAt: now}))
	require.NoError(t, m.Record(ctx, domain.CommandRecord{ID: "b", FinishedAt: now}))
	require.NoError(t, m.Record(ctx, domain.CommandRecord{ID: "c", FinishedAt: now}))
	require.NoError(t, m.Record(ctx, domain.CommandRecord{ID: "c", Phase: domain.PhaseFailed}))

	records, err := m.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, domain.PhaseFailed, records[0].Phase)
	assert.Equal(t, "b", records[1].ID)

	one, err := m.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
	assert.NoError(t, m.Close())
}
