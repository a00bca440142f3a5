// Package render draws the dashboard pieces as strings. Every function is a
// pure view of its inputs.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/errors"
)

const (
	channelWidth = 12
	orderIDWidth = 18
	statusWidth  = 10
	retryWidth   = 7

	retryMarker = "↻ retry"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// RowState defines the inputs needed to render an order row.
type RowState struct {
	Order    domain.Order
	Width    int
	Selected bool
}

// StatusBarState defines the refresh bookkeeping shown under the title.
type StatusBarState struct {
	Summary           domain.Summary
	LastFetchAt       time.Time
	InFlight          int
	ConsecutiveErrors int
	PollInterval      time.Duration
	Now               time.Time
}

// StatusStyle returns the fixed style for an order status. Unknown statuses
// are unstyled.
func StatusStyle(status domain.OrderStatus) lipgloss.Style {
	code := ansiColorNumber(colors.ForOrderStatus(status.String()))
	if !status.IsKnown() || code == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// StatusBadge renders the status label in its color.
func StatusBadge(status domain.OrderStatus) string {
	label := status.String()
	if label == "" {
		label = "unknown"
	}
	return StatusStyle(status).Render(label)
}

// Header renders the order table header.
func Header(width int) string {
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		channelWidth, "CHANNEL",
		orderIDWidth, "ORDER",
		statusWidth, "STATUS",
		retryWidth, "",
	)
	return headerStyle.Render(truncate(strings.TrimRight(header, " "), width))
}

// Row renders a single order row. The retry marker appears only for orders
// that can be retried.
func Row(state RowState) string {
	orderID := state.Order.OrderID
	if orderID == "" {
		orderID = state.Order.ID
	}
	retry := ""
	if state.Order.CanRetry() {
		retry = retryMarker
	}

	status := state.Order.Status.String()
	if status == "" {
		status = "unknown"
	}

	if state.Selected {
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
			channelWidth, clip(state.Order.Channel, channelWidth),
			orderIDWidth, clip(orderID, orderIDWidth),
			statusWidth, clip(status, statusWidth),
			retryWidth, retry,
		)
		return selectedStyle.Render(truncate(line, state.Width))
	}

	badge := StatusStyle(state.Order.Status).Render(fmt.Sprintf("%-*s", statusWidth, clip(status, statusWidth)))
	line := fmt.Sprintf("%-*s  %-*s  %s  %s",
		channelWidth, clip(state.Order.Channel, channelWidth),
		orderIDWidth, clip(orderID, orderIDWidth),
		badge,
		retry,
	)
	return strings.TrimRight(line, " ")
}

// Title renders the dashboard title with collection totals.
func Title(summary domain.Summary) string {
	counts := fmt.Sprintf("%d orders  %s %d  %s %d  %s %d",
		summary.Total,
		StatusStyle(domain.StatusSuccess).Render("success"), summary.Success,
		StatusStyle(domain.StatusFailed).Render("failed"), summary.Failed,
		StatusStyle(domain.StatusPending).Render("pending"), summary.Pending,
	)
	if summary.Unknown > 0 {
		counts += fmt.Sprintf("  other %d", summary.Unknown)
	}
	return titleStyle.Render("Order Sync Tracker") + "  " + counts
}

// StatusBar renders refresh bookkeeping, e.g. "updated 12s ago · next poll every 2m0s".
func StatusBar(state StatusBarState) string {
	now := state.Now
	if now.IsZero() {
		now = time.Now()
	}

	parts := []string{}
	if state.LastFetchAt.IsZero() {
		parts = append(parts, "not loaded yet")
	} else {
		parts = append(parts, "updated "+Age(state.LastFetchAt, now)+" ago")
	}
	if state.PollInterval > 0 {
		parts = append(parts, "polling every "+state.PollInterval.String())
	}
	if state.InFlight > 0 {
		parts = append(parts, "refreshing")
	}
	if state.ConsecutiveErrors > 0 {
		parts = append(parts, StatusStyle(domain.StatusFailed).Render(fmt.Sprintf("%d failed refreshes", state.ConsecutiveErrors)))
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

// FilterBar renders the tri-state view filter and the channel filter.
func FilterBar(filter domain.FilterState) string {
	views := []struct {
		label  string
		filter domain.StatusFilter
	}{
		{"[a]ll", domain.StatusFilterNone},
		{"[p]ending", domain.StatusFilterPending},
		{"[f]ailed", domain.StatusFilterFailed},
	}

	parts := make([]string, 0, len(views)+1)
	for _, v := range views {
		if filter.Status == v.filter {
			parts = append(parts, activeStyle.Render(v.label))
		} else {
			parts = append(parts, mutedStyle.Render(v.label))
		}
	}
	channel := filter.Channel
	if channel == "" {
		channel = domain.ChannelAll
	}
	parts = append(parts, "[c]hannel: "+activeStyle.Render(channel))
	return strings.Join(parts, "  ")
}

// SyncBar renders one sync trigger per configured channel. Channels with a
// sync in flight show the spinner frame.
func SyncBar(channels []string, syncing map[string]int, spinner string) string {
	if len(channels) == 0 {
		return mutedStyle.Render("no channels configured")
	}
	parts := make([]string, 0, len(channels))
	for i, ch := range channels {
		label := ch
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, ch)
		}
		if syncing[ch] > 0 {
			label += " " + spinner
		}
		parts = append(parts, label)
	}
	return "sync: " + strings.Join(parts, "  ")
}

// Toast renders the latest notification line.
func Toast(msg errors.Message, spinner string) string {
	if msg.Text == "" {
		return ""
	}
	switch msg.Type {
	case errors.MessageTypeError:
		return StatusStyle(domain.StatusFailed).Render("✗ " + msg.Text)
	case errors.MessageTypeSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green))).Render("✓ " + msg.Text)
	case errors.MessageTypeWarning:
		return StatusStyle(domain.StatusPending).Render("! " + msg.Text)
	case errors.MessageTypeLoading:
		return spinner + " " + msg.Text
	default:
		return msg.Text
	}
}

// EmptyState renders the placeholder shown when no order is visible.
func EmptyState(filter domain.FilterState, loaded bool) string {
	if !loaded {
		return mutedStyle.Render("Loading orders...")
	}
	return mutedStyle.Render("No " + strings.TrimPrefix(filter.String(), "all ") + ".")
}

// Footer renders the footer help text.
func Footer(help string) string {
	return mutedStyle.Render(help)
}

// HelpOverlay renders the full key binding list.
func HelpOverlay(full string) string {
	return titleStyle.Render("Keys") + "\n" + full
}

// Age renders a compact duration such as "45s", "3m" or "2h".
func Age(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

func clip(value string, width int) string {
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	return string([]rune(value)[:width])
}

// ansiColorNumber converts an SGR foreground escape sequence into the
// terminal palette index lipgloss expects.
// Example: "\033[0;34m" -> "4", "\033[0;90m" -> "8"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	code, err := strconv.Atoi(ansi[lastSemicolon+1 : len(ansi)-1])
	if err != nil {
		return ""
	}
	switch {
	case code >= 30 && code <= 37:
		return strconv.Itoa(code - 30)
	case code >= 90 && code <= 97:
		return strconv.Itoa(code - 82)
	default:
		return ""
	}
}
