// Package rate throttles requests against the DONKI API. NASA's shared
// DEMO_KEY is limited to roughly 30 requests per hour per IP; real keys
// allow far more, so the limit is configurable.
package rate

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	l *rate.Limiter
}

// New returns a limiter allowing perSecond requests with the given burst.
func New(perSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{l: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}

// Allow reports whether a request may proceed right now.
func (l *Limiter) Allow() bool {
	return l.l.Allow()
}
