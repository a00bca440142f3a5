package state

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func noTick(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }

func testOrders() domain.Collection {
	return domain.Collection{
		{ID: "1", OrderID: "SHO-1", Channel: "shopify", Status: domain.StatusFailed},
		{ID: "2", OrderID: "SHO-2", Channel: "shopify", Status: domain.StatusPending},
		{ID: "3", OrderID: "AMZ-1", Channel: "amazon", Status: domain.StatusSuccess},
		{ID: "4", OrderID: "AMZ-2", Channel: "amazon", Status: domain.StatusPending},
	}
}

func newTestModel(t *testing.T, svc ordersync.Service, history storage.HistoryStore) *Model {
	t.Helper()
	return NewModel(Options{
		Service:  svc,
		Channels: []string{"shopify", "amazon", "flipkart"},
		History:  history,
		Logger:   logging.Noop(),
		TickFunc: noTick,
		Now:      func() time.Time { return testNow },
	})
}

// drain runs cmd and any batched commands, returning the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds every message produced by cmd back into the model until no
// commands remain. Spinner frames and quit are not fed back.
func pump(m *Model, cmd tea.Cmd) {
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case spinner.TickMsg, tea.QuitMsg:
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, drain(next)...)
	}
}

func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return cmd
}

func countToasts(m *Model, text string) int {
	n := 0
	for _, msg := range m.errorHandler.GetAll() {
		if msg.Text == text {
			n++
		}
	}
	return n
}
