package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/render"
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.uiState.IsHelpVisible() {
		return render.HelpOverlay(m.help.Full())
	}

	var s strings.Builder
	s.WriteString(m.renderTop())
	s.WriteString("\n")
	s.WriteString(m.uiState.GetViewport().View())
	s.WriteString("\n")
	s.WriteString(m.renderBottom())
	return s.String()
}

func (m *Model) renderTop() string {
	width := m.uiState.GetWidth()
	stats := m.refresh.Stats()

	lines := []string{
		render.Title(domain.Summarize(m.orders)),
		render.StatusBar(render.StatusBarState{
			LastFetchAt:       stats.LastFetchAt,
			InFlight:          stats.InFlight,
			ConsecutiveErrors: stats.ConsecutiveErrors,
			PollInterval:      m.refresh.Interval(),
			Now:               m.now(),
		}),
		render.FilterBar(m.filter),
		render.SyncBar(m.channels, m.syncingChannels(), m.spinner.View()),
		"",
		render.Chart(domain.Aggregate(m.orders), width),
		"",
	}
	if !m.uiState.IsStatsView() {
		lines = append(lines, render.Header(width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBottom() string {
	return render.Toast(m.toast, m.spinner.View()) + "\n" + render.Footer(m.help.Footer())
}

// updateViewportContent re-renders the body and keeps the cursor in view.
func (m *Model) updateViewportContent() {
	chrome := lipgloss.Height(m.renderTop()) + lipgloss.Height(m.renderBottom())
	m.uiState.UpdateViewportSize(chrome)

	vp := m.uiState.GetViewport()
	if m.uiState.IsStatsView() {
		vp.SetContent(render.StatsCards(m.stats, m.uiState.GetWidth()))
		vp.GotoTop()
		return
	}

	visible := m.Visible()
	m.uiState.AdjustCursorBounds(len(visible))
	if len(visible) == 0 {
		vp.SetContent(render.EmptyState(m.filter, m.loaded))
		m.uiState.EnsureCursorVisible(0)
		return
	}

	width := m.uiState.GetWidth()
	cursor := m.uiState.GetCursor()
	rows := make([]string, 0, len(visible))
	for i, order := range visible {
		rows = append(rows, render.Row(render.RowState{Order: order, Width: width, Selected: i == cursor}))
	}
	vp.SetContent(strings.Join(rows, "\n"))
	m.uiState.EnsureCursorVisible(len(visible))
}
