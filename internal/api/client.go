package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Client provides access to the CryptoCompare min-api.
type Client struct {
	baseURL    string
	quote      string // quote currency for all endpoints (e.g. "USD")
	rotator    *KeyRotator
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries int
	retryDelay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. apiKeys may be empty, in which
// case requests are sent without an authorization header.
func NewClient(baseURL string, apiKeys []string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		quote:   "USD",
		rotator: NewKeyRotator(apiKeys),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:     slog.Default(),
		maxRetries: 3,
		retryDelay: 1500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the attempt budget and the fixed delay between attempts.
func WithRetries(max int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryDelay = delay
	}
}

// WithQuoteCurrency sets the quote currency used by all endpoints.
func WithQuoteCurrency(tsym string) ClientOption {
	return func(c *Client) {
		c.quote = tsym
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
