package strompris

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"
	_ "time/tzdata"

	"strompris/internal/httpclient"
	"strompris/internal/ratelimit"
)

// DefaultMaxDaysAhead is the default publication horizon, see WithMaxDaysAhead.
const DefaultMaxDaysAhead = 1

// oslo is the time zone the upstream publishes days in
var oslo = mustLoadLocation("Europe/Oslo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load %s location: %v", name, err))
	}
	return loc
}

// Client is the client for the Strømpris API hosted on
// www.hvakosterstrommen.no. A Client holds configuration only and is safe
// for concurrent use.
type Client struct {
	baseURL      *url.URL
	transport    Transport
	limiter      *ratelimit.Limiter
	maxDaysAhead int
	now          func() time.Time
	logger       *slog.Logger
}

// New creates a client. It fails only on invalid options.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	base, err := parseBaseURL(o.baseURL, o.allowHTTP)
	if err != nil {
		return nil, err
	}
	if o.retryCount < 0 {
		return nil, fmt.Errorf("retry count must not be negative, got %d", o.retryCount)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	c := &Client{
		baseURL:      base,
		transport:    o.transport,
		maxDaysAhead: o.maxDaysAhead,
		now:          o.now,
		logger:       o.logger,
	}
	if c.transport == nil {
		c.transport = httpclient.New(httpclient.Options{
			Timeout:    o.timeout,
			UserAgent:  o.userAgent,
			RetryCount: o.retryCount,
			Logger:     o.logger,
		})
	}
	if o.rps > 0 {
		c.limiter = ratelimit.New(o.rps, o.burst)
	}
	return c, nil
}

// Default returns a client for the production API with default settings.
func Default() *Client {
	c, err := New()
	if err != nil {
		// the defaults are constants
		panic(err)
	}
	return c
}

// Close releases the transport if it holds resources.
func (c *Client) Close() error {
	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// PriceURL returns the URL the client requests for date and region.
func (c *Client) PriceURL(date Date, region PriceRegion) string {
	return BuildURL(c.baseURL, date, region).String()
}

// GetPrices returns the hourly prices for date in region, blocking until the
// request completes. Prices are returned in upstream order, which is
// chronological. Every failure is an *Error.
func (c *Client) GetPrices(ctx context.Context, date Date, region PriceRegion) ([]HourlyPrice, error) {
	u, err := c.prepare(date, region)
	if err != nil {
		return nil, err
	}
	status, body, err := c.dispatch(ctx, date, region, u)
	if err != nil {
		return nil, err
	}
	return c.complete(date, region, status, body)
}

// GetPricesAsync starts a request and returns immediately. The returned
// channel receives exactly one Result and is then closed. Validation
// happens before GetPricesAsync returns, so an invalid request yields a
// ready Result without starting a goroutine.
func (c *Client) GetPricesAsync(ctx context.Context, date Date, region PriceRegion) <-chan Result {
	out := make(chan Result, 1)

	u, err := c.prepare(date, region)
	if err != nil {
		out <- Result{Err: err}
		close(out)
		return out
	}

	go func() {
		defer close(out)

		status, body, err := c.dispatch(ctx, date, region, u)
		if err != nil {
			out <- Result{Err: err}
			return
		}
		prices, err := c.complete(date, region, status, body)
		out <- Result{Prices: prices, Err: err}
	}()

	return out
}

// prepare validates the request and builds its URL
func (c *Client) prepare(date Date, region PriceRegion) (string, error) {
	if !region.Valid() {
		return "", newValidationError(date, ErrInvalidRegion).withRequest(date, region)
	}
	if date.IsZero() {
		return "", newValidationError(date, ErrInvalidDate).withRequest(date, region)
	}
	if date.Before(MinDate()) {
		return "", newValidationError(date, fmt.Errorf("%w: earliest is %s", ErrDateTooEarly, MinDate())).
			withRequest(date, region)
	}
	if c.maxDaysAhead >= 0 {
		latest := dateIn(c.now(), oslo).AddDays(c.maxDaysAhead)
		if date.After(latest) {
			return "", newValidationError(date, fmt.Errorf("%w: latest is %s", ErrDateInFuture, latest)).
				withRequest(date, region)
		}
	}
	return c.PriceURL(date, region), nil
}

// dispatch is the only step that waits on the network
func (c *Client) dispatch(ctx context.Context, date Date, region PriceRegion, u string) (int, []byte, error) {
	if !c.limiter.Allow() {
		c.logger.Debug("waiting for rate limiter",
			"date", date.String(),
			"region", region.Code())
		if err := c.limiter.Wait(ctx); err != nil {
			// Wait only fails on a done or too-short context
			e := newNetworkError(date, region, err)
			e.Retryable = false
			return 0, nil, e
		}
	}

	status, body, err := c.transport.Get(ctx, u)
	if err != nil {
		e := newNetworkError(date, region, err)
		if errors.Is(err, context.Canceled) {
			e.Retryable = false
		}
		return 0, nil, e
	}
	return status, body, nil
}

func (c *Client) complete(date Date, region PriceRegion, status int, body []byte) ([]HourlyPrice, error) {
	prices, err := Decode(status, body)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, e.withRequest(date, region)
		}
		return nil, err
	}
	c.logger.Debug("decoded prices",
		"date", date.String(),
		"region", region.Code(),
		"count", len(prices))
	return prices, nil
}
