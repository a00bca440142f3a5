package render

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/errors"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestAnsiColorNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{colors.Blue, "4"},
		{colors.Red, "1"},
		{colors.Yellow, "3"},
		{colors.Gray, "8"},
		{colors.Reset, ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ansiColorNumber(tt.in))
	}
}

func TestRowShowsRetryOnlyForFailed(t *testing.T) {
	failed := plain(Row(RowState{Order: domain.Order{ID: "1", OrderID: "SHO-1", Channel: "shopify", Status: domain.StatusFailed}}))
	success := plain(Row(RowState{Order: domain.Order{ID: "2", OrderID: "SHO-2", Channel: "shopify", Status: domain.StatusSuccess}}))

	assert.Contains(t, failed, "SHO-1")
	assert.Contains(t, failed, "failed")
	assert.Contains(t, failed, retryMarker)
	assert.NotContains(t, success, retryMarker)
}

func TestRowFallsBackToIDAndUnknownStatus(t *testing.T) {
	row := plain(Row(RowState{Order: domain.Order{ID: "abc123", Channel: "ebay"}}))

	assert.Contains(t, row, "abc123")
	assert.Contains(t, row, "unknown")
}

func TestRowSelectedTruncatesToWidth(t *testing.T) {
	row := plain(Row(RowState{
		Order:    domain.Order{ID: "1", OrderID: "A-VERY-LONG-ORDER-IDENTIFIER", Channel: "shopify", Status: domain.StatusPending},
		Selected: true,
		Width:    30,
	}))

	assert.LessOrEqual(t, len([]rune(row)), 30)
	assert.Contains(t, row, "shopify")
}

func TestUnknownStatusIsUnstyled(t *testing.T) {
	assert.Equal(t, "on-hold", StatusBadge("on-hold"))
	assert.Equal(t, "unknown", StatusBadge(""))
}

func TestHeader(t *testing.T) {
	header := plain(Header(0))

	assert.Contains(t, header, "CHANNEL")
	assert.Contains(t, header, "ORDER")
	assert.Contains(t, header, "STATUS")
}

func TestTitleIncludesTotals(t *testing.T) {
	title := plain(Title(domain.Summary{Total: 4, Success: 1, Failed: 2, Pending: 1}))
	assert.Contains(t, title, "4 orders")
	assert.Contains(t, title, "failed 2")
	assert.NotContains(t, title, "other")

	title = plain(Title(domain.Summary{Total: 1, Unknown: 1}))
	assert.Contains(t, title, "other 1")
}

func TestStatusBar(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	bar := plain(StatusBar(StatusBarState{
		LastFetchAt:       now.Add(-45 * time.Second),
		PollInterval:      2 * time.Minute,
		InFlight:          1,
		ConsecutiveErrors: 2,
		Now:               now,
	}))

	assert.Contains(t, bar, "updated 45s ago")
	assert.Contains(t, bar, "polling every 2m0s")
	assert.Contains(t, bar, "refreshing")
	assert.Contains(t, bar, "2 failed refreshes")
	assert.Contains(t, plain(StatusBar(StatusBarState{Now: now})), "not loaded yet")
}

func TestFilterBar(t *testing.T) {
	bar := plain(FilterBar(domain.NewFilterState().SelectFailed().SelectChannel("amazon")))

	assert.Contains(t, bar, "[f]ailed")
	assert.Contains(t, bar, "[c]hannel: amazon")
	assert.Contains(t, plain(FilterBar(domain.FilterState{})), "[c]hannel: all")
}

func TestSyncBar(t *testing.T) {
	bar := SyncBar([]string{"shopify", "amazon"}, map[string]int{"amazon": 1}, "*")

	assert.Equal(t, "sync: 1 shopify  2 amazon *", bar)
	assert.Contains(t, plain(SyncBar(nil, nil, "")), "no channels")
}

func TestToast(t *testing.T) {
	assert.Equal(t, "", Toast(errors.Message{}, ""))
	assert.Equal(t, "✓ Synced 3 amazon orders", plain(Toast(errors.Message{Text: "Synced 3 amazon orders", Type: errors.MessageTypeSuccess}, "")))
	assert.Equal(t, "✗ Failed to fetch orders", plain(Toast(errors.Message{Text: "Failed to fetch orders", Type: errors.MessageTypeError}, "")))
	assert.Equal(t, "⣾ Syncing amazon orders...", Toast(errors.Message{Text: "Syncing amazon orders...", Type: errors.MessageTypeLoading}, "⣾"))
}

func TestEmptyState(t *testing.T) {
	assert.Equal(t, "Loading orders...", plain(EmptyState(domain.NewFilterState(), false)))
	assert.Equal(t, "No pending orders on ebay.", plain(EmptyState(domain.NewFilterState().SelectPending().SelectChannel("ebay"), true)))
	assert.Equal(t, "No orders.", plain(EmptyState(domain.NewFilterState(), true)))
	assert.Equal(t, "No orders on ebay.", plain(EmptyState(domain.NewFilterState().SelectChannel("ebay"), true)))
}

func TestAge(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "0s", Age(now.Add(time.Second), now))
	assert.Equal(t, "5m", Age(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h", Age(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d", Age(now.Add(-49*time.Hour), now))
}

func TestFooterAndHelp(t *testing.T) {
	assert.Equal(t, "q: quit", plain(Footer("q: quit")))
	assert.True(t, strings.HasSuffix(HelpOverlay("  q quit\n"), "  q quit\n"))
}
