// Package ordersync is the client for the Order Sync Service, the backend
// that ingests orders from sales channels and reports their status.
package ordersync

import (
	"context"
	"net/url"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// Service is the set of backend operations the dashboard depends on.
// Every method is a suspension point; none mutate client-side state.
type Service interface {
	// FetchOrders returns the current order collection, optionally narrowed server-side.
	FetchOrders(ctx context.Context, query Query) (domain.Collection, error)

	// SyncChannel asks the backend to pull new orders from a channel.
	SyncChannel(ctx context.Context, channel string) (SyncResult, error)

	// RetryOrder re-submits a failed order.
	RetryOrder(ctx context.Context, orderID string) error

	// FetchStats returns the server-side (channel, status) counts.
	FetchStats(ctx context.Context) ([]domain.StatRecord, error)
}

// Query narrows FetchOrders server-side. The zero value fetches everything.
type Query struct {
	Status  domain.OrderStatus
	Channel string
}

// Values encodes the query as URL parameters, omitting empty fields.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Status != "" {
		values.Set("status", q.Status.String())
	}
	if q.Channel != "" && q.Channel != domain.ChannelAll {
		values.Set("channel", q.Channel)
	}
	return values
}

// SyncResult reports how many records a channel sync produced.
type SyncResult struct {
	Channel     string
	SyncedCount int
}
