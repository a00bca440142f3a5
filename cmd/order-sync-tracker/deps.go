package main

import (
	"context"
	"sync"

	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/app"
	"github.com/cristianoliveira/order-sync-tracker/internal/version"
)

// defaultClient backs every command. The HTTP client is built on first use
// because configuration is only loaded once a command starts.
type defaultClient struct {
	once sync.Once
	svc  ordersync.Service
}

var _ ordersync.Service = (*defaultClient)(nil)

func (c *defaultClient) service() ordersync.Service {
	c.once.Do(func() {
		c.svc = ordersync.NewHTTPClient(ordersync.OptionsFromConfig()...)
	})
	return c.svc
}

func (c *defaultClient) FetchOrders(ctx context.Context, query ordersync.Query) (domain.Collection, error) {
	return c.service().FetchOrders(ctx, query)
}

func (c *defaultClient) SyncChannel(ctx context.Context, channel string) (ordersync.SyncResult, error) {
	return c.service().SyncChannel(ctx, channel)
}

func (c *defaultClient) RetryOrder(ctx context.Context, orderID string) error {
	return c.service().RetryOrder(ctx, orderID)
}

func (c *defaultClient) FetchStats(ctx context.Context) ([]domain.StatRecord, error) {
	return c.service().FetchStats(ctx)
}

// OpenHistory opens the command history journal.
func (c *defaultClient) OpenHistory() (storage.HistoryStore, error) {
	return storage.NewHistoryFromConfig()
}

// Channels returns the configured sales channels.
func (c *defaultClient) Channels() []string {
	return config.GetList("channels", nil)
}

// Version returns the build version.
func (c *defaultClient) Version() string {
	return version.String()
}

var appClient = &defaultClient{}

var tuiClient app.Client = app.NewDefaultClient(nil, nil)
