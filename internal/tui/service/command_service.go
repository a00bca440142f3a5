package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/errors"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
)

// CommandState tracks one invocation of a sync or retry.
type CommandState struct {
	ID          string
	Kind        domain.CommandKind
	Target      string
	Phase       domain.CommandPhase
	SyncedCount int
	Err         error
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Record converts a finished state into its journal entry.
func (s CommandState) Record() domain.CommandRecord {
	rec := domain.CommandRecord{
		ID:          s.ID,
		Kind:        s.Kind,
		Target:      s.Target,
		Phase:       s.Phase,
		SyncedCount: s.SyncedCount,
		StartedAt:   s.StartedAt,
		FinishedAt:  s.FinishedAt,
	}
	if s.Err != nil {
		rec.Error = s.Err.Error()
	}
	return rec
}

// CommandOutcome is the result of the remote call.
type CommandOutcome struct {
	SyncedCount int
	Err         error
}

// CommandService runs sync and retry commands. Each invocation is
// independent: identical concurrent commands are neither merged nor blocked.
type CommandService struct {
	service  ordersync.Service
	notifier errors.Notifier
	history  storage.HistoryStore
	logger   logging.Logger
	now      func() time.Time
	newID    func() string
}

// CommandOption configures a CommandService.
type CommandOption func(*CommandService)

// WithHistory journals every finished command.
func WithHistory(h storage.HistoryStore) CommandOption {
	return func(s *CommandService) {
		s.history = h
	}
}

// WithCommandLogger sets the logger.
func WithCommandLogger(l logging.Logger) CommandOption {
	return func(s *CommandService) {
		s.logger = l
	}
}

// WithCommandClock sets the time source.
func WithCommandClock(now func() time.Time) CommandOption {
	return func(s *CommandService) {
		s.now = now
	}
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(fn func() string) CommandOption {
	return func(s *CommandService) {
		s.newID = fn
	}
}

// NewCommandService creates a command orchestrator.
func NewCommandService(svc ordersync.Service, notifier errors.Notifier, opts ...CommandOption) *CommandService {
	s := &CommandService{
		service:  svc,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.With("component", "commands")
	}
	return s
}

// Begin moves a new command to InFlight and announces it.
func (s *CommandService) Begin(kind domain.CommandKind, target string) CommandState {
	state := CommandState{
		ID:        s.newID(),
		Kind:      kind,
		Target:    target,
		Phase:     domain.PhaseInFlight,
		StartedAt: s.now(),
	}
	s.notifier.Notify(errors.Message{Key: state.ID, Text: startedText(state), Type: errors.MessageTypeLoading})
	s.logger.Info("command started", "id", state.ID, "kind", kind.String(), "target", target)
	return state
}

// Execute performs the remote call for state. It is the command's only
// blocking step and does not touch shared state.
func (s *CommandService) Execute(ctx context.Context, state CommandState) CommandOutcome {
	switch state.Kind {
	case domain.CommandSync:
		result, err := s.service.SyncChannel(ctx, state.Target)
		return CommandOutcome{SyncedCount: result.SyncedCount, Err: err}
	case domain.CommandRetry:
		return CommandOutcome{Err: s.service.RetryOrder(ctx, state.Target)}
	default:
		return CommandOutcome{Err: fmt.Errorf("unknown command kind %q", state.Kind)}
	}
}

// Finish records the outcome, announces it and journals the command. The
// caller owes exactly one refresh afterwards regardless of the outcome.
func (s *CommandService) Finish(state CommandState, outcome CommandOutcome) CommandState {
	state = s.Settle(state, outcome)
	if state.Phase == domain.PhaseFailed {
		s.notifier.Notify(errors.Message{Key: state.ID, Text: failedText(state), Type: errors.MessageTypeError})
	} else {
		s.notifier.Notify(errors.Message{Key: state.ID, Text: succeededText(state), Type: errors.MessageTypeSuccess})
	}
	return state
}

// Settle records the outcome and journals the command without announcing
// it. Commands that resolve after their session ended only settle.
func (s *CommandService) Settle(state CommandState, outcome CommandOutcome) CommandState {
	state.FinishedAt = s.now()
	state.SyncedCount = outcome.SyncedCount
	state.Err = outcome.Err
	if outcome.Err != nil {
		state.Phase = domain.PhaseFailed
		s.logger.Warn("command failed", "id", state.ID, "kind", state.Kind.String(), "target", state.Target, "error", outcome.Err)
	} else {
		state.Phase = domain.PhaseSucceeded
		s.logger.Info("command succeeded", "id", state.ID, "kind", state.Kind.String(), "target", state.Target, "synced_count", outcome.SyncedCount)
	}

	if s.history != nil {
		if err := s.history.Record(context.Background(), state.Record()); err != nil {
			s.logger.Warn("failed to record command history", "id", state.ID, "error", err)
		}
	}
	return state
}

// Run wraps Execute as a bubbletea command reporting CommandFinishedMsg.
func (s *CommandService) Run(state CommandState) tea.Cmd {
	return func() tea.Msg {
		return CommandFinishedMsg{State: state, Outcome: s.Execute(context.Background(), state)}
	}
}

// Sync begins a channel sync and returns the command that performs it.
func (s *CommandService) Sync(channel string) (CommandState, tea.Cmd) {
	state := s.Begin(domain.CommandSync, channel)
	return state, s.Run(state)
}

// Retry begins an order retry and returns the command that performs it.
func (s *CommandService) Retry(orderID string) (CommandState, tea.Cmd) {
	state := s.Begin(domain.CommandRetry, orderID)
	return state, s.Run(state)
}

// RunSync runs a sync to completion on the calling goroutine.
func (s *CommandService) RunSync(ctx context.Context, channel string) CommandState {
	state := s.Begin(domain.CommandSync, channel)
	return s.Finish(state, s.Execute(ctx, state))
}

// RunRetry runs a retry to completion on the calling goroutine.
func (s *CommandService) RunRetry(ctx context.Context, orderID string) CommandState {
	state := s.Begin(domain.CommandRetry, orderID)
	return s.Finish(state, s.Execute(ctx, state))
}

func startedText(state CommandState) string {
	if state.Kind == domain.CommandRetry {
		return fmt.Sprintf("Retrying order %s...", state.Target)
	}
	return fmt.Sprintf("Syncing %s orders...", state.Target)
}

func succeededText(state CommandState) string {
	if state.Kind == domain.CommandRetry {
		return fmt.Sprintf("Retry successful for order %s", state.Target)
	}
	return fmt.Sprintf("Synced %d %s orders", state.SyncedCount, state.Target)
}

func failedText(state CommandState) string {
	text := fmt.Sprintf("Failed to sync %s", state.Target)
	if state.Kind == domain.CommandRetry {
		text = fmt.Sprintf("Retry failed for order %s", state.Target)
	}
	if reason := rejectionReason(state.Err); reason != "" {
		text += ": " + reason
	}
	return text
}

// rejectionReason returns the backend's explanation for an explicit rejection.
func rejectionReason(err error) string {
	var syncErr *ordersync.ChannelSyncError
	if stderrors.As(err, &syncErr) {
		return syncErr.Reason
	}
	var retryErr *ordersync.RetryRejectedError
	if stderrors.As(err, &retryErr) {
		return retryErr.Reason
	}
	if ordersync.IsBreakerOpen(err) {
		return "service unavailable"
	}
	return ""
}
