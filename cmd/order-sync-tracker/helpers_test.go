package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
)

func testOrders() domain.Collection {
	return domain.Collection{
		{ID: "1", OrderID: "SHO-1", Channel: "shopify", Status: domain.StatusFailed},
		{ID: "2", OrderID: "SHO-2", Channel: "shopify", Status: domain.StatusPending},
		{ID: "3", OrderID: "AMZ-1", Channel: "amazon", Status: domain.StatusSuccess},
	}
}

type fakeCommandClient struct {
	*ordersync.MockService
	history storage.HistoryStore
	err     error
}

func (f *fakeCommandClient) OpenHistory() (storage.HistoryStore, error) {
	return f.history, f.err
}

// captureColors sends colors output to a buffer for the duration of the test.
func captureColors(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	colors.SetOutput(&buf, &buf)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &buf
}

func execute(c *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}
