package strompris

import (
	"log/slog"
	"time"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL      string
	allowHTTP    bool
	transport    Transport
	timeout      time.Duration
	userAgent    string
	retryCount   int
	maxDaysAhead int
	rps          float64
	burst        int
	now          func() time.Time
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		baseURL:      DefaultBaseURL,
		maxDaysAhead: DefaultMaxDaysAhead,
		now:          time.Now,
	}
}

// WithBaseURL sets the root of the price API. Mostly useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithInsecureHTTP permits a plain http base URL, such as a local test server.
func WithInsecureHTTP() Option {
	return func(o *options) {
		o.allowHTTP = true
	}
}

// WithTransport replaces the built-in HTTP client. Timeout, user agent and
// retry options are ignored when a transport is supplied.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithTimeout bounds each request made by the built-in HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithRetries enables up to n retries on network errors, 408, 429 and 5xx.
// Retries are disabled by default.
func WithRetries(n int) Option {
	return func(o *options) {
		o.retryCount = n
	}
}

// WithMaxDaysAhead sets how many days after today (Europe/Oslo) a request
// may target before it is rejected locally with ErrDateInFuture. Day-ahead
// prices are published around 13:00, so the default is 1. A negative
// value disables the check and leaves the decision to the upstream.
func WithMaxDaysAhead(n int) Option {
	return func(o *options) {
		o.maxDaysAhead = n
	}
}

// WithRateLimit paces requests made through the client.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *options) {
		o.rps = requestsPerSecond
		o.burst = burst
	}
}

// WithClock sets the function used to determine today's date.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger used for debug request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
