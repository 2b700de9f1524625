package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"resty.dev/v3"
)

const (
	// DefaultTimeout bounds a single request including reading the body
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies this client to the upstream
	DefaultUserAgent = "strompris Go client (github.com/erlingv-chr/strompris)"

	defaultRetryWaitTime    = 1 * time.Second
	defaultRetryMaxWaitTime = 10 * time.Second
)

// Options configures the HTTP client
type Options struct {
	Timeout   time.Duration
	UserAgent string

	// RetryCount is the number of extra attempts after a failed request.
	// Zero disables retries.
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration

	Logger *slog.Logger
}

// Client performs GET requests for JSON documents on top of resty
type Client struct {
	client *resty.Client
	logger *slog.Logger
}

// New creates a new HTTP client. Zero fields in opts take defaults.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = defaultRetryWaitTime
	}
	if opts.RetryMaxWaitTime <= 0 {
		opts.RetryMaxWaitTime = defaultRetryMaxWaitTime
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Client{logger: opts.Logger}
	c.client = resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.UserAgent).
		SetTimeout(opts.Timeout)

	if opts.RetryCount > 0 {
		c.client.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(opts.RetryWaitTime).
			SetRetryMaxWaitTime(opts.RetryMaxWaitTime).
			AddRetryConditions(retryCondition).
			AddRetryHooks(c.retryHook)
	}

	return c
}

// Get fetches url and returns the status code and raw body. The error is
// non-nil only when no response was received.
func (c *Client) Get(ctx context.Context, url string) (int, []byte, error) {
	c.logger.Debug("requesting price document", "url", url)

	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return 0, nil, err
	}

	c.logger.Debug("received price document",
		"url", url,
		"status_code", resp.StatusCode())

	return resp.StatusCode(), resp.Bytes(), nil
}

// Close releases idle connections held by the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	// Retry on network errors
	if err != nil {
		return true
	}

	switch code := r.StatusCode(); {
	case code >= 500:
		return true
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	default:
		// 404 means the day is not published yet, retrying will not help
		return false
	}
}

// retryHook logs retry attempts for observability
func (c *Client) retryHook(r *resty.Response, err error) {
	if r == nil || r.Request == nil {
		c.logger.Debug("retrying request due to error", "error", err)
		return
	}

	if err != nil {
		c.logger.Debug("retrying request due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}

	c.logger.Debug("retrying request due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}
