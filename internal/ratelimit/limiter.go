// Package ratelimit paces requests to the local explanation model so that
// bursts of chat calls do not starve the inference endpoint.
package ratelimit

import (
	"context"
	"time"
)

// Limiter throttles outgoing requests.
type Limiter interface {
	// Wait blocks until a request may proceed or the context is canceled.
	Wait(ctx context.Context) error
	// Allow reports whether a request may proceed right now.
	Allow() bool
	// RetryAfter returns the backoff before the given retry attempt.
	RetryAfter(attempt int) time.Duration
}

// Strategy selects the pacing behavior.
type Strategy string

const (
	StrategyTokenBucket Strategy = "token_bucket"
	StrategyFixedDelay  Strategy = "fixed_delay"
)

// NewLimiter creates a limiter for the configured strategy, defaulting to a
// token bucket.
func NewLimiter(cfg Config) Limiter {
	cfg = cfg.withDefaults()
	if cfg.Strategy == StrategyFixedDelay {
		return newFixedDelay(cfg)
	}
	return newTokenBucket(cfg)
}
