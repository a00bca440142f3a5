package mockbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

func TestNewStoreSeedsEveryChannel(t *testing.T) {
	s := NewStore([]string{"shopify", "amazon"})

	orders := s.List("", "")
	require.Len(t, orders, 6)
	assert.Len(t, s.List("", "amazon"), 3)
	assert.Len(t, s.List(domain.StatusFailed, ""), 2)
	for _, o := range orders {
		assert.NotEmpty(t, o.ID)
		assert.NotEmpty(t, o.OrderID)
	}
}

func TestSyncAppendsPendingBatch(t *testing.T) {
	s := NewStore([]string{"amazon"}, WithBatchSize(3), WithSeed(5))
	before := len(s.List("", ""))

	synced, err := s.Sync("amazon")

	require.NoError(t, err)
	assert.Len(t, synced, 3)
	for _, o := range synced {
		assert.Equal(t, "amazon", o.Channel)
		assert.Equal(t, domain.StatusPending, o.Status)
	}
	assert.Len(t, s.List("", ""), before+3)
	assert.Len(t, s.List(domain.StatusPending, "amazon"), 3, "earlier pending orders settle on sync")
}

func TestSyncUnknownChannel(t *testing.T) {
	s := NewStore([]string{"amazon"})

	_, err := s.Sync("ebay")

	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestRetry(t *testing.T) {
	s := NewStore(nil, WithOrders([]domain.Order{
		{ID: "a", OrderID: "SHO-1", Channel: "shopify", Status: domain.StatusFailed},
		{ID: "b", OrderID: "SHO-2", Channel: "shopify", Status: domain.StatusSuccess},
	}))

	order, err := s.Retry("SHO-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, order.Status)

	_, err = s.Retry("SHO-1")
	assert.ErrorIs(t, err, ErrNotRetryable)

	_, err = s.Retry("b")
	assert.ErrorIs(t, err, ErrNotRetryable)

	_, err = s.Retry("nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestStats(t *testing.T) {
	s := NewStore(nil, WithOrders([]domain.Order{
		{ID: "1", Channel: "shopify", Status: domain.StatusFailed},
		{ID: "2", Channel: "shopify", Status: domain.StatusFailed},
		{ID: "3", Channel: "amazon", Status: domain.StatusPending},
	}))

	stats := s.Stats()

	require.Len(t, stats, 2)
	assert.Equal(t, domain.StatRecord{Key: domain.StatKey{Channel: "shopify", Status: domain.StatusFailed}, Count: 2}, stats[0])
	assert.Equal(t, domain.StatRecord{Key: domain.StatKey{Channel: "amazon", Status: domain.StatusPending}, Count: 1}, stats[1])
}
