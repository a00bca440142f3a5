// Package mockbackend is an in-memory stand-in for the Order Sync Service,
// used for local development and end-to-end tests of the client.
package mockbackend

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

var (
	// ErrOrderNotFound is returned when no order matches a retry target.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotRetryable is returned when retrying an order that has not failed.
	ErrNotRetryable = errors.New("order is not in failed state")

	// ErrUnknownChannel is returned when syncing a channel the store does not serve.
	ErrUnknownChannel = errors.New("unknown channel")
)

// Store holds the backend's orders. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	orders    []domain.Order
	channels  []string
	rng       *rand.Rand
	batchSize int
	nextID    int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSeed makes generated orders deterministic.
func WithSeed(seed int64) StoreOption {
	return func(s *Store) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithBatchSize fixes how many orders each sync produces. Zero picks 1 to 5 at random.
func WithBatchSize(n int) StoreOption {
	return func(s *Store) {
		s.batchSize = n
	}
}

// WithOrders replaces the seeded orders.
func WithOrders(orders []domain.Order) StoreOption {
	return func(s *Store) {
		s.orders = append([]domain.Order(nil), orders...)
	}
}

// NewStore creates a store serving channels, seeded with a few orders each.
func NewStore(channels []string, opts ...StoreOption) *Store {
	s := &Store{
		channels: append([]string(nil), channels...),
		rng:      rand.New(rand.NewSource(1)),
		nextID:   1000,
	}
	for _, ch := range channels {
		for _, status := range domain.KnownStatuses {
			s.orders = append(s.orders, s.newOrder(ch, status))
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) newOrder(channel string, status domain.OrderStatus) domain.Order {
	s.nextID++
	prefix := strings.ToUpper(channel)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return domain.Order{
		ID:      uuid.NewString(),
		OrderID: fmt.Sprintf("%s-%d", prefix, s.nextID),
		Channel: channel,
		Status:  status,
	}
}

// List returns the orders matching status and channel; empty values match all.
func (s *Store) List(status domain.OrderStatus, channel string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		if channel != "" && o.Channel != channel {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Sync settles the channel's pending orders and ingests a new batch, which
// arrives pending. It returns the ingested orders.
func (s *Store) Sync(channel string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.serves(channel) {
		return nil, ErrUnknownChannel
	}
	for i := range s.orders {
		if s.orders[i].Channel != channel || s.orders[i].Status != domain.StatusPending {
			continue
		}
		if s.rng.Intn(4) == 0 {
			s.orders[i].Status = domain.StatusFailed
		} else {
			s.orders[i].Status = domain.StatusSuccess
		}
	}

	n := s.batchSize
	if n <= 0 {
		n = 1 + s.rng.Intn(5)
	}
	synced := make([]domain.Order, 0, n)
	for i := 0; i < n; i++ {
		o := s.newOrder(channel, domain.StatusPending)
		s.orders = append(s.orders, o)
		synced = append(synced, o)
	}
	return synced, nil
}

// Retry moves a failed order to success. The target matches either the
// order number or the collection key.
func (s *Store) Retry(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		o := &s.orders[i]
		if o.OrderID != orderID && o.ID != orderID {
			continue
		}
		if !o.CanRetry() {
			return *o, ErrNotRetryable
		}
		o.Status = domain.StatusSuccess
		return *o, nil
	}
	return domain.Order{}, ErrOrderNotFound
}

// Stats counts orders per (channel, status) in first-seen order.
func (s *Store) Stats() []domain.StatRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[domain.StatKey]int)
	records := make([]domain.StatRecord, 0)
	for _, o := range s.orders {
		key := domain.StatKey{Channel: o.Channel, Status: o.Status}
		i, ok := index[key]
		if !ok {
			i = len(records)
			index[key] = i
			records = append(records, domain.StatRecord{Key: key})
		}
		records[i].Count++
	}
	return records
}

func (s *Store) serves(channel string) bool {
	for _, ch := range s.channels {
		if ch == channel {
			return true
		}
	}
	return false
}
