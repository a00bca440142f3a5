package ordersync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// HTTPClient implements Service over the Order Sync Service REST API.
// All calls share one circuit breaker.
type HTTPClient struct {
	baseURL            string
	timeout            time.Duration
	userAgent          string
	http               *http.Client
	logger             logging.Logger
	breakerMaxFailures int
	breakerOpenTimeout time.Duration

	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
}

var _ Service = (*HTTPClient)(nil)

// NewHTTPClient creates a client with the given options applied over defaults.
func NewHTTPClient(opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:            DefaultBaseURL,
		timeout:            DefaultTimeout,
		http:               &http.Client{},
		breakerMaxFailures: DefaultBreakerMaxFailures,
		breakerOpenTimeout: DefaultBreakerOpenTimeout,
		validate:           validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if c.logger == nil {
		c.logger = logging.With("component", "ordersync")
	}

	maxFailures := c.breakerMaxFailures
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "order-sync-service",
		MaxRequests: 1,
		Timeout:     c.breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return maxFailures > 0 && counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// BaseURL returns the orders endpoint the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// FetchOrders implements Service.
func (c *HTTPClient) FetchOrders(ctx context.Context, query Query) (domain.Collection, error) {
	const op = "fetch orders"
	resp, err := c.send(ctx, op, http.MethodGet, "", query.Values())
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &TransportError{Op: op, StatusCode: resp.status, Err: resp.reason()}
	}

	env, data, err := decodeEnvelope(resp.body)
	if err != nil {
		return nil, &DataShapeError{Op: op, Err: err}
	}
	if env.failed() {
		return nil, &TransportError{Op: op, StatusCode: resp.status, Err: errors.New(env.reason())}
	}

	var orders domain.Collection
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, &DataShapeError{Op: op, Err: err}
	}
	valid := make(domain.Collection, 0, len(orders))
	var firstErr error
	for i := range orders {
		if err := c.validate.Struct(orders[i]); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("order %d: %w", i, err)
			}
			continue
		}
		valid = append(valid, orders[i])
	}
	// Malformed rows are dropped so one bad record cannot freeze the view;
	// a payload with no usable row at all is still a shape error.
	if firstErr != nil {
		if len(valid) == 0 {
			return nil, &DataShapeError{Op: op, Err: firstErr}
		}
		c.logger.Warn("skipped malformed orders", "skipped", len(orders)-len(valid), "kept", len(valid), "error", firstErr)
	}
	orders = valid
	c.logger.Debug("fetched orders", "count", len(orders), "status", query.Status.String(), "channel", query.Channel)
	return orders, nil
}

// SyncChannel implements Service.
func (c *HTTPClient) SyncChannel(ctx context.Context, channel string) (SyncResult, error) {
	op := "sync " + channel
	if strings.TrimSpace(channel) == "" {
		return SyncResult{}, &ChannelSyncError{Channel: channel, Reason: "channel is required"}
	}

	resp, err := c.send(ctx, op, http.MethodPost, "/sync/"+url.PathEscape(channel), nil)
	if err != nil {
		return SyncResult{}, err
	}
	if !resp.ok() {
		if resp.isRejection() {
			return SyncResult{}, &ChannelSyncError{Channel: channel, StatusCode: resp.status, Reason: resp.reason().Error()}
		}
		return SyncResult{}, &TransportError{Op: op, StatusCode: resp.status}
	}

	env, data, err := decodeEnvelope(resp.body)
	if err != nil {
		return SyncResult{}, &DataShapeError{Op: op, Err: err}
	}
	if env.failed() {
		return SyncResult{}, &ChannelSyncError{Channel: channel, StatusCode: resp.status, Reason: env.reason()}
	}

	var synced []json.RawMessage
	if err := json.Unmarshal(data, &synced); err != nil {
		return SyncResult{}, &DataShapeError{Op: op, Err: err}
	}
	c.logger.Info("channel synced", "channel", channel, "synced_count", len(synced))
	return SyncResult{Channel: channel, SyncedCount: len(synced)}, nil
}

// RetryOrder implements Service.
func (c *HTTPClient) RetryOrder(ctx context.Context, orderID string) error {
	op := "retry " + orderID
	if strings.TrimSpace(orderID) == "" {
		return &RetryRejectedError{OrderID: orderID, Reason: "order id is required"}
	}

	resp, err := c.send(ctx, op, http.MethodPut, "/retry/"+url.PathEscape(orderID), nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		if resp.isRejection() {
			return &RetryRejectedError{OrderID: orderID, StatusCode: resp.status, Reason: resp.reason().Error()}
		}
		return &TransportError{Op: op, StatusCode: resp.status}
	}

	// Success needs no payload; only an explicit success:false envelope rejects.
	if len(bytes.TrimSpace(resp.body)) > 0 {
		var env envelope
		if json.Unmarshal(resp.body, &env) == nil && env.failed() {
			return &RetryRejectedError{OrderID: orderID, StatusCode: resp.status, Reason: env.reason()}
		}
	}
	c.logger.Info("order retried", "order_id", orderID)
	return nil
}

// FetchStats implements Service.
func (c *HTTPClient) FetchStats(ctx context.Context) ([]domain.StatRecord, error) {
	const op = "fetch stats"
	resp, err := c.send(ctx, op, http.MethodGet, "/stats", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &TransportError{Op: op, StatusCode: resp.status, Err: resp.reason()}
	}

	env, data, err := decodeEnvelope(resp.body)
	if err != nil {
		return nil, &DataShapeError{Op: op, Err: err}
	}
	if env.failed() {
		return nil, &TransportError{Op: op, StatusCode: resp.status, Err: errors.New(env.reason())}
	}
	var records []domain.StatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DataShapeError{Op: op, Err: err}
	}
	for i := range records {
		if err := c.validate.Struct(records[i]); err != nil {
			return nil, &DataShapeError{Op: op, Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}
	return records, nil
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// isRejection reports whether a non-2xx response is the backend refusing
// the operation rather than failing to serve it.
func (r *response) isRejection() bool {
	if r.status >= 400 && r.status < 500 {
		return true
	}
	var env envelope
	return json.Unmarshal(r.body, &env) == nil && env.explained()
}

func (r *response) reason() error {
	var env envelope
	if json.Unmarshal(r.body, &env) == nil && env.explained() {
		return errors.New(env.reason())
	}
	return errors.New(strings.ToLower(http.StatusText(r.status)))
}

// serverError marks 5xx responses as failures for the breaker while still
// carrying the response for classification.
type serverError struct {
	resp *response
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: status %d", e.resp.status)
}

func (c *HTTPClient) send(ctx context.Context, op, method, path string, query url.Values) (*response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, method, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		httpResp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		resp := &response{status: httpResp.StatusCode, body: body}
		if resp.status >= 500 {
			return nil, &serverError{resp: resp}
		}
		return resp, nil
	})
	duration := time.Since(start)

	var srvErr *serverError
	switch {
	case errors.As(err, &srvErr):
		c.logger.Warn("request failed", "op", op, "method", method, "status", srvErr.resp.status, "duration", duration)
		return srvErr.resp, nil
	case err != nil:
		c.logger.Warn("request failed", "op", op, "method", method, "error", err, "duration", duration)
		return nil, &TransportError{Op: op, Err: err}
	}

	resp := result.(*response)
	c.logger.Debug("request completed", "op", op, "method", method, "status", resp.status, "duration", duration)
	return resp, nil
}

// envelope is the service's response wrapper. Older deployments return a
// bare JSON array instead.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e envelope) explained() bool {
	return e.Error != "" || e.Message != ""
}

func (e envelope) reason() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Message != "":
		return e.Message
	default:
		return "rejected by service"
	}
}

// decodeEnvelope returns the data payload of body, accepting either the
// {"data": [...]} wrapper or a bare array.
func decodeEnvelope(body []byte) (envelope, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return envelope{}, nil, errors.New("empty body")
	}
	if trimmed[0] == '[' {
		return envelope{}, json.RawMessage(trimmed), nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return envelope{}, nil, err
	}
	if env.failed() {
		return env, nil, nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return env, nil, errors.New(`missing "data" field`)
	}
	return env, env.Data, nil
}
