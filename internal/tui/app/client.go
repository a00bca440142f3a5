package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	Close() error
}

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel() (Model, error)
	RunProgram(model Model) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	modelFactory  ModelFactory
	programRunner ProgramRunner
}

// NewDefaultClient creates a default TUI client adapter.
// If modelFactory is nil, a DefaultModelFactory will be used.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(modelFactory ModelFactory, programRunner ProgramRunner) *DefaultClient {
	if modelFactory == nil {
		modelFactory = NewDefaultModelFactory()
	}
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{
		modelFactory:  modelFactory,
		programRunner: programRunner,
	}
}

// CreateModel builds a TUI model implementation.
func (d *DefaultClient) CreateModel() (Model, error) {
	return d.modelFactory.NewModel()
}

// RunProgram starts the bubbletea program using the configured ProgramRunner
// and releases the model once the program exits.
func (d *DefaultClient) RunProgram(model Model) error {
	err := d.programRunner.Run(model)
	if closeErr := model.Close(); closeErr != nil {
		colors.Warning(fmt.Sprintf("Failed to close command history: %v", closeErr))
	}
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
