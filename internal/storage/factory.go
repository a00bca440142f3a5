package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage/sqlite"
)

const (
	historyDBFileName = "history.db"

	// FileModeDir is the permission for the state directory.
	FileModeDir os.FileMode = 0o755

	memoryFallbackRecords = 100
)

var _ HistoryStore = (*sqlite.Journal)(nil)

// GetStateDir returns the configured state directory.
func GetStateDir() string {
	return config.Get("state_dir", "")
}

// NewHistoryFromConfig opens the command history journal. When history is
// disabled nothing is retained; when SQLite cannot be opened the journal
// falls back to process memory.
func NewHistoryFromConfig() (HistoryStore, error) {
	if !config.GetBool("history_enabled", true) {
		return NewMemoryHistory(0), nil
	}

	stateDir := strings.TrimSpace(GetStateDir())
	if stateDir == "" {
		return nil, fmt.Errorf("command history: state_dir not configured")
	}
	if err := os.MkdirAll(stateDir, FileModeDir); err != nil {
		colors.Warning(fmt.Sprintf("failed to create state directory, keeping history in memory: %v", err))
		return NewMemoryHistory(memoryFallbackRecords), nil
	}

	journal, err := sqlite.NewJournal(filepath.Join(stateDir, historyDBFileName))
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to open history database, keeping history in memory: %v", err))
		return NewMemoryHistory(memoryFallbackRecords), nil
	}
	return journal, nil
}
