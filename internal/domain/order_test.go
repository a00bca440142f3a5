package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{"success", StatusSuccess, false},
		{"failed", StatusFailed, false},
		{"pending", StatusPending, false},
		{"cancelled", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanRetryOnlyForFailed(t *testing.T) {
	assert.True(t, Order{Status: StatusFailed}.CanRetry())
	assert.False(t, Order{Status: StatusSuccess}.CanRetry())
	assert.False(t, Order{Status: StatusPending}.CanRetry())
	assert.False(t, Order{Status: "refunded"}.CanRetry())
}

func TestCollectionCloneDoesNotAlias(t *testing.T) {
	orders := Collection{{ID: "1", Channel: "shopify", Status: StatusFailed}}
	clone := orders.Clone()
	clone[0].Status = StatusSuccess

	assert.Equal(t, StatusFailed, orders[0].Status)
	assert.Nil(t, Collection(nil).Clone())
}

func TestFindByID(t *testing.T) {
	orders := Collection{
		{ID: "a", OrderID: "1001", Channel: "shopify", Status: StatusFailed},
		{ID: "b", OrderID: "1002", Channel: "amazon", Status: StatusPending},
	}

	o, ok := orders.FindByID("b")
	require.True(t, ok)
	assert.Equal(t, "1002", o.OrderID)

	_, ok = orders.FindByID("missing")
	assert.False(t, ok)
}

func TestChannelsFirstSeenOrder(t *testing.T) {
	orders := Collection{
		{Channel: "flipkart"},
		{Channel: "shopify"},
		{Channel: "flipkart"},
		{Channel: "ebay"},
	}

	assert.Equal(t, []string{"flipkart", "shopify", "ebay"}, Channels(orders))
	assert.Empty(t, Channels(nil))
}

func TestSummarize(t *testing.T) {
	orders := Collection{
		{Status: StatusSuccess},
		{Status: StatusSuccess},
		{Status: StatusFailed},
		{Status: StatusPending},
		{Status: "on-hold"},
	}

	assert.Equal(t, Summary{Total: 5, Success: 2, Failed: 1, Pending: 1, Unknown: 1}, Summarize(orders))
}
