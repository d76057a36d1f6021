// Package client is the HTTP client for the ChefCommunity REST API.
package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL points at a backend running locally.
	DefaultBaseURL = "http://localhost:5000"
)

// Client talks to the ChefCommunity backend. It is safe for concurrent use.
// Bearer tokens are passed per call since the session can change between
// requests.
//
//	c := client.New(client.WithBaseURL("https://chef.example.com"))
//	feed, err := c.ListRecipes(ctx, token, types.RecipeFilter{Sort: types.SortFollowing})
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client. Requests have no timeout unless one is configured.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
