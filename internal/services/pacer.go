package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces successive calls to an external provider.
// Wait blocks until the next call is allowed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// RatePacer lets the first call through immediately and every later call no
// sooner than interval after the previous one.
type RatePacer struct {
	limiter *rate.Limiter
}

func NewRatePacer(interval time.Duration) *RatePacer {
	return &RatePacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
