// Package state holds the dashboard session: the bubbletea model that owns
// the order collection, the filters and the in-flight commands.
package state

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/errors"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/render"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/service"
)

const (
	defaultViewportWidth  = render.DefaultWidth
	defaultViewportHeight = 22
	minViewportHeight     = 3
	statsNotificationKey  = "stats"
)

// Options configures a dashboard session.
type Options struct {
	Service      ordersync.Service
	Channels     []string
	PollInterval time.Duration
	DiscardStale bool
	History      storage.HistoryStore
	Logger       logging.Logger

	// TickFunc and Now replace tea.Tick and time.Now in tests.
	TickFunc service.TickFunc
	Now      func() time.Time
}

// Model represents the dashboard model for bubbletea. Every field is written
// only from Update.
type Model struct {
	uiState      *UIState
	errorHandler *errors.TUIHandler
	toast        errors.Message

	orders   domain.Collection
	filter   domain.FilterState
	channels []string
	loaded   bool
	stats    []domain.ChannelStats
	commands map[string]service.CommandState

	refresh  *service.RefreshController
	commandS *service.CommandService
	help     *service.HelpProvider
	history  storage.HistoryStore
	spinner  spinner.Model
	logger   logging.Logger
	now      func() time.Time
}

// NewModel creates an inactive session. Init activates it.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.With("component", "dashboard")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		uiState:  NewUIState(),
		filter:   domain.NewFilterState(),
		channels: append([]string(nil), opts.Channels...),
		commands: make(map[string]service.CommandState),
		help:     service.NewHelpProvider(),
		history:  opts.History,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		logger:   logger,
		now:      now,
	}

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.toast = msg
	})

	refreshOpts := []service.RefreshOption{
		service.WithPollInterval(opts.PollInterval),
		service.WithDiscardStale(opts.DiscardStale),
		service.WithRefreshLogger(logger.With("component", "refresh")),
		service.WithClock(now),
	}
	if opts.TickFunc != nil {
		refreshOpts = append(refreshOpts, service.WithTickFunc(opts.TickFunc))
	}
	m.refresh = service.NewRefreshController(opts.Service, m.errorHandler, refreshOpts...)

	commandOpts := []service.CommandOption{
		service.WithCommandLogger(logger.With("component", "commands")),
		service.WithCommandClock(now),
	}
	if opts.History != nil {
		commandOpts = append(commandOpts, service.WithHistory(opts.History))
	}
	m.commandS = service.NewCommandService(opts.Service, m.errorHandler, commandOpts...)

	return m
}

// Init activates the refresh session.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh.Activate(), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.uiState.SetWidth(msg.Width)
		m.uiState.SetHeight(msg.Height)
		m.updateViewportContent()
		return m, nil
	case service.FetchResultMsg:
		return m.handleFetchResult(msg)
	case service.PollTickMsg:
		return m, m.refresh.HandleTick(msg)
	case service.CommandFinishedMsg:
		return m.handleCommandFinished(msg)
	case service.StatsResultMsg:
		return m.handleStatsResult(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleFetchResult(msg service.FetchResultMsg) (tea.Model, tea.Cmd) {
	orders, changed := m.refresh.Apply(msg, m.orders)
	if changed {
		m.orders = orders
		m.loaded = true
		m.updateViewportContent()
	}
	return m, nil
}

func (m *Model) handleCommandFinished(msg service.CommandFinishedMsg) (tea.Model, tea.Cmd) {
	delete(m.commands, msg.State.ID)
	if !m.refresh.Active() {
		m.commandS.Settle(msg.State, msg.Outcome)
		return m, nil
	}
	m.commandS.Finish(msg.State, msg.Outcome)
	m.updateViewportContent()
	return m, m.refresh.AfterCommand()
}

func (m *Model) handleStatsResult(msg service.StatsResultMsg) (tea.Model, tea.Cmd) {
	if !m.refresh.AcceptStats(msg) {
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Warn("fetch stats failed", "error", msg.Err)
		m.errorHandler.Notify(errors.Message{Key: statsNotificationKey, Text: "Failed to fetch stats", Type: errors.MessageTypeError})
		return m, nil
	}
	m.stats = domain.GroupStats(msg.Records)
	m.updateViewportContent()
	return m, nil
}

// startCommand tracks a begun command until its CommandFinishedMsg arrives.
func (m *Model) startCommand(state service.CommandState, cmd tea.Cmd) tea.Cmd {
	m.commands[state.ID] = state
	m.updateViewportContent()
	return cmd
}

// Close releases the history journal.
func (m *Model) Close() error {
	if m.history == nil {
		return nil
	}
	return m.history.Close()
}

// Orders returns a copy of the current collection.
func (m *Model) Orders() domain.Collection {
	return m.orders.Clone()
}

// Visible returns the orders passing the current filter.
func (m *Model) Visible() domain.Collection {
	return m.filter.Visible(m.orders)
}

// Filter returns the current filter state.
func (m *Model) Filter() domain.FilterState {
	return m.filter
}

// Toast returns the latest notification.
func (m *Model) Toast() errors.Message {
	return m.toast
}

// InFlight returns the commands still awaiting their remote call.
func (m *Model) InFlight() []service.CommandState {
	out := make([]service.CommandState, 0, len(m.commands))
	for _, c := range m.commands {
		out = append(out, c)
	}
	return out
}

// SelectedOrder returns the visible order under the cursor.
func (m *Model) SelectedOrder() (domain.Order, bool) {
	visible := m.Visible()
	cursor := m.uiState.GetCursor()
	if cursor < 0 || cursor >= len(visible) {
		return domain.Order{}, false
	}
	return visible[cursor], true
}

// syncingChannels counts in-flight syncs per channel.
func (m *Model) syncingChannels() map[string]int {
	out := make(map[string]int)
	for _, c := range m.commands {
		if c.Kind == domain.CommandSync {
			out[c.Target]++
		}
	}
	return out
}

// channelOptions derives the channel filter choices from the collection, so
// they grow and shrink with the data. Configured channels only drive syncing.
func (m *Model) channelOptions() []string {
	return domain.Channels(m.orders)
}
