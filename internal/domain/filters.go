package domain

import "fmt"

// ChannelAll is the channel filter value that matches every channel.
const ChannelAll = "all"

// StatusFilter is the single active status view. Pending and failed are
// mutually exclusive by construction.
type StatusFilter int

const (
	StatusFilterNone StatusFilter = iota
	StatusFilterPending
	StatusFilterFailed
)

// String returns the view name used in the UI and CLI.
func (f StatusFilter) String() string {
	switch f {
	case StatusFilterPending:
		return "pending"
	case StatusFilterFailed:
		return "failed"
	default:
		return "all"
	}
}

// Status returns the order status the filter selects; ok is false for None.
func (f StatusFilter) Status() (OrderStatus, bool) {
	switch f {
	case StatusFilterPending:
		return StatusPending, true
	case StatusFilterFailed:
		return StatusFailed, true
	default:
		return "", false
	}
}

// ParseStatusFilter parses "all", "pending" or "failed".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch s {
	case "", "all":
		return StatusFilterNone, nil
	case "pending":
		return StatusFilterPending, nil
	case "failed":
		return StatusFilterFailed, nil
	default:
		return StatusFilterNone, fmt.Errorf("invalid status filter: %q (expected one of: all, pending, failed)", s)
	}
}

// FilterState holds the status view and the orthogonal channel filter.
// Transitions return a new value and only happen on explicit user selection.
type FilterState struct {
	Status  StatusFilter
	Channel string
}

// NewFilterState returns the initial state: every order visible.
func NewFilterState() FilterState {
	return FilterState{Status: StatusFilterNone, Channel: ChannelAll}
}

// SelectAll clears any status filter.
func (f FilterState) SelectAll() FilterState {
	f.Status = StatusFilterNone
	return f
}

// SelectPending shows only pending orders, replacing a failed filter.
func (f FilterState) SelectPending() FilterState {
	f.Status = StatusFilterPending
	return f
}

// SelectFailed shows only failed orders, replacing a pending filter.
func (f FilterState) SelectFailed() FilterState {
	f.Status = StatusFilterFailed
	return f
}

// SelectChannel restricts the view to one channel; "" or "all" clears it.
func (f FilterState) SelectChannel(channel string) FilterState {
	if channel == "" {
		channel = ChannelAll
	}
	f.Channel = channel
	return f
}

// CycleChannel steps the channel filter through "all" followed by options,
// wrapping at both ends. A selected channel missing from options restarts at "all".
func (f FilterState) CycleChannel(options []string, step int) FilterState {
	values := append([]string{ChannelAll}, options...)
	current := 0
	for i, v := range values {
		if v == f.channel() {
			current = i
			break
		}
	}
	next := ((current+step)%len(values) + len(values)) % len(values)
	f.Channel = values[next]
	return f
}

func (f FilterState) channel() string {
	if f.Channel == "" {
		return ChannelAll
	}
	return f.Channel
}

// IsDefault reports whether no filter is active.
func (f FilterState) IsDefault() bool {
	return f.Status == StatusFilterNone && f.channel() == ChannelAll
}

// Matches reports whether an order passes both the status and channel checks.
func (f FilterState) Matches(o Order) bool {
	if status, ok := f.Status.Status(); ok && o.Status != status {
		return false
	}
	if ch := f.channel(); ch != ChannelAll && o.Channel != ch {
		return false
	}
	return true
}

// Visible returns the orders passing the filter, preserving collection order.
// The input is never modified.
func (f FilterState) Visible(orders Collection) Collection {
	visible := make(Collection, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			visible = append(visible, o)
		}
	}
	return visible
}

// String describes the filter, e.g. "failed orders on amazon".
func (f FilterState) String() string {
	status := "all orders"
	if f.Status != StatusFilterNone {
		status = f.Status.String() + " orders"
	}
	if ch := f.channel(); ch != ChannelAll {
		return status + " on " + ch
	}
	return status
}
