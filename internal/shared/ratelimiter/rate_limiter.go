// Package ratelimiter paces calls to rate-limited upstream APIs.
package ratelimiter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimiterInterface limits how often an operation such as an API call may
// run.
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows up to limit calls per interval, spread evenly.
type RateLimiter struct {
	lim *rate.Limiter
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter returns a limiter admitting limit calls per interval with a
// burst of one.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	return &RateLimiter{lim: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), 1)}
}

// Wait blocks until a call is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.lim.Reserve()
	if d := r.Delay(); d > 0 {
		log.Debug().Dur("delay", d).Msg("rate limit reached, waiting")
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		}
	}
	return nil
}
