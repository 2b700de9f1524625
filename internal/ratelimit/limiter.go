package ratelimit

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// Limiter paces outgoing requests. A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerSecond with the given burst.
// A non-positive rate means unlimited.
func New(requestsPerSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until the limiter permits a request.
// It returns an error if the context is canceled before the request can proceed
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may happen now and, if so, spends a token
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Limit returns the configured rate in requests per second, +Inf when unlimited
func (l *Limiter) Limit() float64 {
	if l == nil || l.limiter.Limit() == rate.Inf {
		return math.Inf(1)
	}
	return float64(l.limiter.Limit())
}
