package scraper

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates each outbound request. Walk and Enrich call Wait before
// every fetch, so sharing one limiter across both paces the whole run.
type Limiter interface {
	Wait(ctx context.Context) error
}

// IntervalLimiter enforces a minimum interval between requests. The first
// call passes immediately; later calls pace at one per interval.
type IntervalLimiter struct {
	limiter *rate.Limiter
}

// NewIntervalLimiter builds a limiter allowing one request per interval.
// A non-positive interval disables pacing.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &IntervalLimiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may go out or ctx is done.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// NopLimiter never delays. Tests use it to keep runs instant.
type NopLimiter struct{}

// Wait returns immediately with the context error, if any.
func (NopLimiter) Wait(ctx context.Context) error {
	return ctx.Err()
}
