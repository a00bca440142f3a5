package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

const cardWidth = 22

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("241")).
	Padding(0, 1).
	Width(cardWidth)

// StatsCards renders one card per channel with the server-side counts,
// wrapping cards onto new rows to fit width.
func StatsCards(stats []domain.ChannelStats, width int) string {
	if len(stats) == 0 {
		return mutedStyle.Render("No stats reported.")
	}

	cards := make([]string, 0, len(stats))
	for _, s := range stats {
		cards = append(cards, card(s))
	}

	perRow := width / (cardWidth + 4)
	if perRow < 1 {
		perRow = 1
	}
	rows := make([]string, 0, len(cards)/perRow+1)
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func card(s domain.ChannelStats) string {
	lines := []string{titleStyle.Render(s.Channel)}
	for _, status := range domain.KnownStatuses {
		lines = append(lines, fmt.Sprintf("%s %d", StatusStyle(status).Render(status.String()+":"), s.Count(status)))
	}
	for _, status := range otherStatuses(s) {
		lines = append(lines, fmt.Sprintf("%s: %d", status, s.Count(status)))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// otherStatuses lists reported statuses outside the known set in a stable order.
func otherStatuses(s domain.ChannelStats) []domain.OrderStatus {
	var out []domain.OrderStatus
	for status := range s.Counts {
		if !status.IsKnown() {
			out = append(out, status)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
