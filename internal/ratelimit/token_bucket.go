package ratelimit

import (
	"context"
	"sync"
	"time"
)

type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastUpdate time.Time
	cfg        Config
}

func newTokenBucket(cfg Config) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(cfg.Burst),
		lastUpdate: time.Now(),
		cfg:        cfg,
	}
}

func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens += elapsed * tb.cfg.RequestsPerSec
	if capacity := float64(tb.cfg.Burst); tb.tokens > capacity {
		tb.tokens = capacity
	}
	tb.lastUpdate = now
}

func (tb *tokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill(time.Now())
	if tb.tokens >= 1.0 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *tokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		tb.refill(time.Now())
		if tb.tokens >= 1.0 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		deficit := 1.0 - tb.tokens
		wait := time.Duration(deficit / tb.cfg.RequestsPerSec * float64(time.Second))
		tb.mu.Unlock()

		timer := time.NewTimer(wait + time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (tb *tokenBucket) RetryAfter(attempt int) time.Duration {
	return tb.cfg.backoff(attempt)
}
