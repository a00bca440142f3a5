// Package app provides TUI application adapters for command wiring.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/service"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/state"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model tea.Model) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model on the alternate screen.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ModelFactory defines the interface for building dashboard models.
type ModelFactory interface {
	// NewModel creates a dashboard model ready to be run.
	NewModel() (Model, error)
}

// DefaultModelFactory builds the dashboard from the loaded configuration.
type DefaultModelFactory struct{}

// NewDefaultModelFactory creates a new DefaultModelFactory.
func NewDefaultModelFactory() *DefaultModelFactory {
	return &DefaultModelFactory{}
}

// NewModel wires the HTTP service client, the command history and the
// configured channels into a dashboard session.
func (f *DefaultModelFactory) NewModel() (Model, error) {
	history, err := storage.NewHistoryFromConfig()
	if err != nil {
		return nil, fmt.Errorf("open command history: %w", err)
	}
	return state.NewModel(OptionsFromConfig(ordersync.NewHTTPClient(ordersync.OptionsFromConfig()...), history)), nil
}

// OptionsFromConfig reads the session options from the loaded configuration.
func OptionsFromConfig(svc ordersync.Service, history storage.HistoryStore) state.Options {
	return state.Options{
		Service:      svc,
		Channels:     config.GetList("channels", nil),
		PollInterval: config.GetSeconds("poll_interval_seconds", service.DefaultPollInterval),
		DiscardStale: config.GetBool("discard_stale_responses", false),
		History:      history,
	}
}
