package ordersync

import (
	"net/http"
	"time"

	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
	"github.com/cristianoliveira/order-sync-tracker/internal/version"
)

const (
	// DefaultBaseURL is the Order Sync Service orders endpoint.
	DefaultBaseURL = "http://localhost:5000/api/orders"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	// DefaultBreakerMaxFailures is the consecutive failure count that opens the breaker.
	DefaultBreakerMaxFailures = 5

	// DefaultBreakerOpenTimeout is how long the breaker stays open before probing.
	DefaultBreakerOpenTimeout = 30 * time.Second
)

// ClientOption is a functional option for configuring an HTTPClient.
type ClientOption func(*HTTPClient)

// WithBaseURL sets the orders endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *HTTPClient) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithBreaker configures the circuit breaker. maxFailures <= 0 never trips.
func WithBreaker(maxFailures int, openTimeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.breakerMaxFailures = maxFailures
		c.breakerOpenTimeout = openTimeout
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// OptionsFromConfig builds client options from the loaded configuration.
func OptionsFromConfig() []ClientOption {
	return []ClientOption{
		WithBaseURL(config.Get("api_base_url", DefaultBaseURL)),
		WithTimeout(config.GetSeconds("request_timeout_seconds", DefaultTimeout)),
		WithUserAgent(version.UserAgent()),
		WithBreaker(
			config.GetInt("breaker_max_failures", DefaultBreakerMaxFailures),
			config.GetSeconds("breaker_open_seconds", DefaultBreakerOpenTimeout),
		),
	}
}
