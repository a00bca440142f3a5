// Package service holds the dashboard's session services: the polling and
// refresh controller and the sync/retry command orchestrator. Both are driven
// from the bubbletea Update loop and never mutate state from a goroutine.
package service

import (
	"time"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// FetchTrigger records why a fetch was issued.
type FetchTrigger int

const (
	TriggerActivate FetchTrigger = iota
	TriggerTick
	TriggerCommand
	TriggerUser
)

// String returns the trigger name used in logs.
func (t FetchTrigger) String() string {
	switch t {
	case TriggerActivate:
		return "activate"
	case TriggerTick:
		return "tick"
	case TriggerCommand:
		return "command"
	case TriggerUser:
		return "user"
	default:
		return "unknown"
	}
}

// UserVisible reports whether a failed fetch with this trigger is surfaced
// to the operator. Only background ticks stay silent.
func (t FetchTrigger) UserVisible() bool {
	return t != TriggerTick
}

// FetchResultMsg carries a resolved FetchOrders call back into Update.
type FetchResultMsg struct {
	Generation uint64
	Seq        uint64
	Trigger    FetchTrigger
	Orders     domain.Collection
	Err        error
	At         time.Time
}

// PollTickMsg fires once per poll interval for the session that scheduled it.
type PollTickMsg struct {
	Generation uint64
}

// StatsResultMsg carries a resolved FetchStats call back into Update.
type StatsResultMsg struct {
	Generation uint64
	Records    []domain.StatRecord
	Err        error
}

// CommandFinishedMsg reports that a command's remote call has resolved.
type CommandFinishedMsg struct {
	State   CommandState
	Outcome CommandOutcome
}
