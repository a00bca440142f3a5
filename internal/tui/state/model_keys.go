package state

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// handleKeyMsg processes keyboard input for the dashboard.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.handleQuit()
	case tea.KeyUp:
		m.handleMoveUp()
		return m, nil
	case tea.KeyDown:
		m.handleMoveDown()
		return m, nil
	case tea.KeyEsc:
		if m.uiState.IsHelpVisible() {
			m.uiState.ToggleHelp()
		}
		return m, nil
	}

	return m.handleKeyBinding(msg.String())
}

// handleKeyBinding handles string-based key bindings.
func (m *Model) handleKeyBinding(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m.handleQuit()
	case "j":
		m.handleMoveDown()
	case "k":
		m.handleMoveUp()
	case "a":
		m.setFilter(m.filter.SelectAll())
	case "p":
		m.setFilter(m.filter.SelectPending())
	case "f":
		m.setFilter(m.filter.SelectFailed())
	case "c":
		m.setFilter(m.filter.CycleChannel(m.channelOptions(), 1))
	case "C":
		m.setFilter(m.filter.CycleChannel(m.channelOptions(), -1))
	case "r":
		return m, m.handleRetrySelected()
	case "R":
		return m, m.refresh.Refresh()
	case "s":
		return m, m.handleToggleStats()
	case "?":
		m.uiState.ToggleHelp()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m, m.handleSyncChannel(int(key[0] - '1'))
	}
	return m, nil
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.refresh.Teardown()
	return m, tea.Quit
}

// handleSyncChannel syncs the n-th configured channel (zero based).
func (m *Model) handleSyncChannel(index int) tea.Cmd {
	if index < 0 || index >= len(m.channels) {
		return nil
	}
	state, cmd := m.commandS.Sync(m.channels[index])
	return m.startCommand(state, cmd)
}

// handleRetrySelected retries the selected order when it is retryable.
func (m *Model) handleRetrySelected() tea.Cmd {
	order, ok := m.SelectedOrder()
	if !ok || !order.CanRetry() {
		return nil
	}
	target := order.OrderID
	if target == "" {
		target = order.ID
	}
	state, cmd := m.commandS.Retry(target)
	return m.startCommand(state, cmd)
}

func (m *Model) handleToggleStats() tea.Cmd {
	on := m.uiState.ToggleStatsView()
	m.updateViewportContent()
	if !on {
		return nil
	}
	return m.refresh.FetchStats()
}

func (m *Model) setFilter(filter domain.FilterState) {
	m.filter = filter
	m.uiState.ResetCursor()
	m.updateViewportContent()
}

// handleMoveDown moves the cursor down by one position.
func (m *Model) handleMoveDown() {
	m.uiState.MoveCursorDown(len(m.Visible()))
	m.updateViewportContent()
}

// handleMoveUp moves the cursor up by one position.
func (m *Model) handleMoveUp() {
	m.uiState.MoveCursorUp()
	m.updateViewportContent()
}
