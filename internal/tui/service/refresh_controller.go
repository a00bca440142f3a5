package service

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/errors"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
)

const (
	// DefaultPollInterval is the background refresh cadence.
	DefaultPollInterval = 120 * time.Second

	// FetchNotificationKey groups fetch failure toasts.
	FetchNotificationKey = "fetch"

	fetchFailedText = "Failed to fetch orders"
)

// TickFunc schedules fn after d. tea.Tick is the production implementation.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// RefreshStats is the controller bookkeeping shown in the status bar.
type RefreshStats struct {
	LastFetchAt       time.Time
	LastError         error
	ConsecutiveErrors int
	InFlight          int
	Active            bool
}

// RefreshController keeps the order collection fresh. It owns the poll tick
// for one session: ticks and responses carry the session generation, and
// anything from another generation is dropped. It is not safe for concurrent
// use; call it only from Update.
type RefreshController struct {
	service      ordersync.Service
	notifier     errors.Notifier
	logger       logging.Logger
	interval     time.Duration
	discardStale bool
	tick         TickFunc
	now          func() time.Time

	active     bool
	generation uint64
	nextSeq    uint64
	appliedSeq uint64
	stats      RefreshStats
}

// RefreshOption configures a RefreshController.
type RefreshOption func(*RefreshController)

// WithPollInterval sets the background cadence.
func WithPollInterval(d time.Duration) RefreshOption {
	return func(r *RefreshController) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithDiscardStale drops responses older than the latest applied one instead
// of letting the last response to resolve win.
func WithDiscardStale(enabled bool) RefreshOption {
	return func(r *RefreshController) {
		r.discardStale = enabled
	}
}

// WithTickFunc replaces tea.Tick.
func WithTickFunc(fn TickFunc) RefreshOption {
	return func(r *RefreshController) {
		r.tick = fn
	}
}

// WithRefreshLogger sets the logger used for silent failures.
func WithRefreshLogger(l logging.Logger) RefreshOption {
	return func(r *RefreshController) {
		r.logger = l
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) RefreshOption {
	return func(r *RefreshController) {
		r.now = now
	}
}

// NewRefreshController creates an inactive controller.
func NewRefreshController(svc ordersync.Service, notifier errors.Notifier, opts ...RefreshOption) *RefreshController {
	r := &RefreshController{
		service:  svc,
		notifier: notifier,
		interval: DefaultPollInterval,
		tick:     tea.Tick,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.With("component", "refresh")
	}
	return r
}

// Interval returns the poll cadence.
func (r *RefreshController) Interval() time.Duration {
	return r.interval
}

// Generation returns the current session generation.
func (r *RefreshController) Generation() uint64 {
	return r.generation
}

// Active reports whether the session is live.
func (r *RefreshController) Active() bool {
	return r.active
}

// Stats returns a snapshot of the bookkeeping.
func (r *RefreshController) Stats() RefreshStats {
	s := r.stats
	s.Active = r.active
	return s
}

// Activate starts a session: one fetch now and the first poll tick.
func (r *RefreshController) Activate() tea.Cmd {
	r.active = true
	r.generation++
	r.stats.InFlight = 0
	r.logger.Info("refresh session activated", "generation", r.generation, "interval", r.interval)
	return tea.Batch(r.fetch(TriggerActivate), r.scheduleTick())
}

// HandleTick fetches and schedules the next tick, unless the tick belongs to
// a torn down session.
func (r *RefreshController) HandleTick(msg PollTickMsg) tea.Cmd {
	if !r.active || msg.Generation != r.generation {
		return nil
	}
	return tea.Batch(r.fetch(TriggerTick), r.scheduleTick())
}

// Refresh issues an operator-requested fetch.
func (r *RefreshController) Refresh() tea.Cmd {
	if !r.active {
		return nil
	}
	return r.fetch(TriggerUser)
}

// AfterCommand issues the single refresh owed to a completed command,
// whether it succeeded or failed.
func (r *RefreshController) AfterCommand() tea.Cmd {
	if !r.active {
		return nil
	}
	return r.fetch(TriggerCommand)
}

// Teardown ends the session. Pending ticks and late responses are ignored;
// requests already in flight are left to finish.
func (r *RefreshController) Teardown() {
	if !r.active {
		return
	}
	r.active = false
	r.generation++
	r.stats.InFlight = 0
	r.logger.Info("refresh session torn down")
}

// Apply reconciles a fetch result into the collection. It returns the
// collection to display and whether it changed. On failure the current
// collection is returned untouched.
func (r *RefreshController) Apply(msg FetchResultMsg, current domain.Collection) (domain.Collection, bool) {
	if !r.active || msg.Generation != r.generation {
		r.logger.Debug("discarding fetch from ended session", "seq", msg.Seq, "generation", msg.Generation)
		return current, false
	}
	if r.stats.InFlight > 0 {
		r.stats.InFlight--
	}

	if msg.Err != nil {
		r.stats.ConsecutiveErrors++
		r.stats.LastError = msg.Err
		if msg.Trigger.UserVisible() {
			r.notifier.Notify(errors.Message{Key: FetchNotificationKey, Text: fetchFailedText, Type: errors.MessageTypeError})
		}
		r.logger.Warn("fetch orders failed", "trigger", msg.Trigger.String(), "seq", msg.Seq, "error", msg.Err)
		return current, false
	}

	if r.discardStale && msg.Seq < r.appliedSeq {
		r.logger.Debug("discarding stale fetch", "seq", msg.Seq, "applied_seq", r.appliedSeq)
		return current, false
	}

	r.appliedSeq = msg.Seq
	r.stats.LastFetchAt = msg.At
	r.stats.LastError = nil
	r.stats.ConsecutiveErrors = 0
	return msg.Orders.Clone(), true
}

func (r *RefreshController) fetch(trigger FetchTrigger) tea.Cmd {
	r.nextSeq++
	r.stats.InFlight++
	seq, gen, svc, now := r.nextSeq, r.generation, r.service, r.now

	return func() tea.Msg {
		orders, err := svc.FetchOrders(context.Background(), ordersync.Query{})
		return FetchResultMsg{
			Generation: gen,
			Seq:        seq,
			Trigger:    trigger,
			Orders:     orders,
			Err:        err,
			At:         now(),
		}
	}
}

func (r *RefreshController) scheduleTick() tea.Cmd {
	gen := r.generation
	return r.tick(r.interval, func(time.Time) tea.Msg {
		return PollTickMsg{Generation: gen}
	})
}

// FetchStats loads the server-side stats view for the current session.
func (r *RefreshController) FetchStats() tea.Cmd {
	if !r.active {
		return nil
	}
	gen, svc := r.generation, r.service
	return func() tea.Msg {
		records, err := svc.FetchStats(context.Background())
		return StatsResultMsg{Generation: gen, Records: records, Err: err}
	}
}

// AcceptStats reports whether a stats result belongs to the live session.
func (r *RefreshController) AcceptStats(msg StatsResultMsg) bool {
	return r.active && msg.Generation == r.generation
}
