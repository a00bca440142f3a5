package domain

import "time"

// CommandKind identifies an operator command.
type CommandKind string

const (
	CommandSync  CommandKind = "sync"
	CommandRetry CommandKind = "retry"
)

// String returns the command name.
func (k CommandKind) String() string {
	return string(k)
}

// CommandPhase is the lifecycle position of one command invocation.
type CommandPhase string

const (
	PhaseIdle      CommandPhase = "idle"
	PhaseInFlight  CommandPhase = "in_flight"
	PhaseSucceeded CommandPhase = "succeeded"
	PhaseFailed    CommandPhase = "failed"
)

// String returns the phase name.
func (p CommandPhase) String() string {
	return string(p)
}

// Done reports whether the phase is terminal.
func (p CommandPhase) Done() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// CommandRecord is the journaled outcome of a finished command.
type CommandRecord struct {
	ID          string
	Kind        CommandKind
	Target      string
	Phase       CommandPhase
	SyncedCount int
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns how long the command was in flight.
func (r CommandRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
