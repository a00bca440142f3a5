package ordersync

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
)

// TransportError is a network or HTTP-layer failure. The operation may
// succeed if attempted again.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ChannelSyncError means the backend explicitly reported that a channel
// sync could not complete.
type ChannelSyncError struct {
	Channel    string
	StatusCode int
	Reason     string
}

func (e *ChannelSyncError) Error() string {
	return fmt.Sprintf("sync %s rejected: %s", e.Channel, e.Reason)
}

// RetryRejectedError means the backend refused to retry an order.
type RetryRejectedError struct {
	OrderID    string
	StatusCode int
	Reason     string
}

func (e *RetryRejectedError) Error() string {
	return fmt.Sprintf("retry %s rejected: %s", e.OrderID, e.Reason)
}

// DataShapeError means a response could not be decoded or is missing
// required fields. Unknown status values are not shape errors.
type DataShapeError struct {
	Op  string
	Err error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Op, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transport failure worth repeating.
func IsRetryable(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}

// IsBreakerOpen reports whether err was produced without contacting the
// backend because the circuit breaker is open.
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
