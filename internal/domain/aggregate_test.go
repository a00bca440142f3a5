package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateScenario(t *testing.T) {
	orders := Collection{
		{Channel: "shopify", Status: StatusFailed},
		{Channel: "shopify", Status: StatusSuccess},
		{Channel: "amazon", Status: StatusPending},
	}

	want := []ChannelAggregate{
		{Channel: "shopify", Success: 1, Failed: 1, Pending: 0},
		{Channel: "amazon", Success: 0, Failed: 0, Pending: 1},
	}
	assert.Equal(t, want, Aggregate(orders))
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate(Collection{}))
	assert.Equal(t, 0, MaxTotal(nil))
}

func TestAggregateIgnoresUnknownStatus(t *testing.T) {
	orders := Collection{
		{Channel: "ebay", Status: "cancelled"},
		{Channel: "shopify", Status: StatusSuccess},
		{Channel: "shopify", Status: ""},
	}

	got := Aggregate(orders)

	assert.Len(t, got, 2)
	assert.Equal(t, ChannelAggregate{Channel: "ebay"}, got[0])
	assert.Equal(t, 0, got[0].Total())
	assert.Equal(t, 1, got[1].Total())
}

func TestAggregateCountsMatchKnownOrders(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []OrderStatus{StatusSuccess, StatusFailed, StatusPending, "unknown", "refunded"}
	channels := []string{"shopify", "amazon", "flipkart", "ebay"}

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		orders := make(Collection, 0, n)
		known := 0
		distinct := make(map[string]bool)
		for i := 0; i < n; i++ {
			o := Order{
				ID:      fmt.Sprintf("%d-%d", round, i),
				Channel: channels[rng.Intn(len(channels))],
				Status:  statuses[rng.Intn(len(statuses))],
			}
			if o.Status.IsKnown() {
				known++
			}
			distinct[o.Channel] = true
			orders = append(orders, o)
		}

		got := Aggregate(orders)

		assert.Len(t, got, len(distinct))
		total := 0
		seen := make(map[string]bool)
		for _, a := range got {
			assert.False(t, seen[a.Channel], "channel %s aggregated twice", a.Channel)
			seen[a.Channel] = true
			total += a.Total()
		}
		assert.Equal(t, known, total)
	}
}

func TestAggregatePermutationInvariantCounts(t *testing.T) {
	orders := Collection{
		{Channel: "shopify", Status: StatusFailed},
		{Channel: "amazon", Status: StatusSuccess},
		{Channel: "shopify", Status: StatusPending},
		{Channel: "amazon", Status: StatusSuccess},
		{Channel: "flipkart", Status: StatusFailed},
	}
	byChannel := func(aggs []ChannelAggregate) map[string]ChannelAggregate {
		m := make(map[string]ChannelAggregate)
		for _, a := range aggs {
			m[a.Channel] = a
		}
		return m
	}
	want := byChannel(Aggregate(orders))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := orders.Clone()
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, byChannel(Aggregate(shuffled)))
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	orders := Collection{{ID: "1", Channel: "shopify", Status: StatusFailed}}
	before := orders.Clone()

	_ = Aggregate(orders)

	assert.Equal(t, before, orders)
}

func TestChannelAggregateCount(t *testing.T) {
	a := ChannelAggregate{Channel: "amazon", Success: 3, Failed: 2, Pending: 1}

	assert.Equal(t, 3, a.Count(StatusSuccess))
	assert.Equal(t, 2, a.Count(StatusFailed))
	assert.Equal(t, 1, a.Count(StatusPending))
	assert.Equal(t, 0, a.Count("other"))
	assert.Equal(t, 6, MaxTotal([]ChannelAggregate{{Success: 2}, a}))
}
