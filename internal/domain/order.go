// Package domain provides the domain layer for channel orders.
// It contains the order value objects and the pure view transforms
// (filtering, aggregation, stats grouping) computed over them.
package domain

import (
	"fmt"
)

// Order is one externally sourced order snapshot. Orders are owned by the
// Order Sync Service; the client only replaces whole collections.
type Order struct {
	ID      string      `json:"_id" validate:"required"`
	OrderID string      `json:"orderId"`
	Channel string      `json:"channel" validate:"required"`
	Status  OrderStatus `json:"status" validate:"required"`
}

// OrderStatus represents the processing status of an order.
type OrderStatus string

const (
	StatusSuccess OrderStatus = "success"
	StatusFailed  OrderStatus = "failed"
	StatusPending OrderStatus = "pending"
)

// KnownStatuses lists the closed status set in chart order.
var KnownStatuses = []OrderStatus{StatusSuccess, StatusFailed, StatusPending}

// IsKnown reports whether the status is one of success, failed or pending.
func (s OrderStatus) IsKnown() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusPending:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus parses a known status. Unknown values are an error here;
// decoding from the service keeps them verbatim instead.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsKnown() {
		return "", fmt.Errorf("invalid order status: %q (expected one of: success, failed, pending)", s)
	}
	return status, nil
}

// CanRetry reports whether the retry affordance is offered for the order.
// It depends only on the order's current status.
func (o Order) CanRetry() bool {
	return o.Status == StatusFailed
}

// Collection is the full set of orders currently known to the client.
type Collection []Order

// Clone returns a copy that does not share backing storage with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// FindByID returns the order with the given collection key.
func (c Collection) FindByID(id string) (Order, bool) {
	for _, o := range c {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Channels returns the distinct channels present in the collection in
// first-seen order. This is the option set offered by the channel filter.
func Channels(orders Collection) []string {
	seen := make(map[string]bool)
	channels := make([]string, 0)
	for _, o := range orders {
		if seen[o.Channel] {
			continue
		}
		seen[o.Channel] = true
		channels = append(channels, o.Channel)
	}
	return channels
}

// Summary holds collection-wide status totals.
type Summary struct {
	Total   int
	Success int
	Failed  int
	Pending int
	Unknown int
}

// Summarize counts orders per status.
func Summarize(orders Collection) Summary {
	s := Summary{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case StatusSuccess:
			s.Success++
		case StatusFailed:
			s.Failed++
		case StatusPending:
			s.Pending++
		default:
			s.Unknown++
		}
	}
	return s
}
