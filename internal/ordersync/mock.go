package ordersync

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// MockService is a testify mock of Service.
//
// Example usage:
//
//	svc := new(MockService)
//	svc.On("SyncChannel", mock.Anything, "amazon").Return(SyncResult{Channel: "amazon", SyncedCount: 3}, nil)
//	svc.On("FetchOrders", mock.Anything, Query{}).Return(domain.Collection{}, nil).Once()
type MockService struct {
	mock.Mock
}

var _ Service = (*MockService)(nil)

// FetchOrders returns the mocked collection.
func (m *MockService) FetchOrders(ctx context.Context, query Query) (domain.Collection, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).(domain.Collection)
	return orders, args.Error(1)
}

// SyncChannel returns the mocked sync result.
func (m *MockService) SyncChannel(ctx context.Context, channel string) (SyncResult, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(SyncResult), args.Error(1)
}

// RetryOrder returns the mocked error.
func (m *MockService) RetryOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// FetchStats returns the mocked records.
func (m *MockService) FetchStats(ctx context.Context) ([]domain.StatRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.StatRecord)
	return records, args.Error(1)
}
