package service

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// immediateTick fires the tick callback as soon as the command runs.
func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
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

func fetchResults(msgs []tea.Msg) []FetchResultMsg {
	var out []FetchResultMsg
	for _, m := range msgs {
		if r, ok := m.(FetchResultMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func pollTicks(msgs []tea.Msg) []PollTickMsg {
	var out []PollTickMsg
	for _, m := range msgs {
		if t, ok := m.(PollTickMsg); ok {
			out = append(out, t)
		}
	}
	return out
}
