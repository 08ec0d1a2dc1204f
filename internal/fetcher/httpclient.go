package fetcher

import (
	"context"
	"errors"
	"time"

	"resty.dev/v3"

	"stockquote/internal/ratelimit"
)

const defaultTimeout = 10 * time.Second

// Client is the shared HTTP transport. It holds only fixed base configuration
// and is safe for concurrent use by every widget.
type Client struct {
	http    *resty.Client
	limiter *ratelimit.Limiter
	api     ratelimit.API
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	timeout time.Duration
	limiter *ratelimit.Limiter
	api     ratelimit.API
}

// WithTimeout bounds each individual request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimiter makes every request wait for a token of api on limiter.
func WithRateLimiter(limiter *ratelimit.Limiter, api ratelimit.API) ClientOption {
	return func(c *clientConfig) {
		c.limiter = limiter
		c.api = api
	}
}

// NewHTTPClient creates a JSON client for baseURL. Retries are not handled
// here; wrap the client in a Retrier for that.
func NewHTTPClient(baseURL string, opts ...ClientOption) *Client {
	cfg := clientConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.timeout).
		SetRetryCount(0)

	return &Client{
		http:    client,
		limiter: cfg.limiter,
		api:     cfg.api,
	}
}

// Get implements Getter.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.api); err != nil {
			return NewTimeoutError(err)
		}
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(params)
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Get(path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return NewTimeoutError(err)
		}
		return NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return ClassifyHTTPError(resp.StatusCode())
	}

	return nil
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	return c.http.Close()
}
