package ratelimit

import (
	"math"
	"math/rand"
	"time"
)

// Config holds limiter settings, usually unmarshaled from the yaml config.
type Config struct {
	Strategy          Strategy      `yaml:"strategy" json:"strategy"`
	RequestsPerSec    float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
	FixedDelay        time.Duration `yaml:"fixed_delay" json:"fixed_delay"`
	MaxRetries        int           `yaml:"max_retries" json:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff" json:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff" json:"max_backoff"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier" json:"backoff_multiplier"`
}

// DefaultConfig paces a single local inference endpoint.
func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyTokenBucket,
		RequestsPerSec:    2.0,
		Burst:             4,
		FixedDelay:        time.Second,
		MaxRetries:        3,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Strategy == "" {
		c.Strategy = def.Strategy
	}
	if c.RequestsPerSec <= 0 {
		c.RequestsPerSec = def.RequestsPerSec
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	if c.FixedDelay <= 0 {
		c.FixedDelay = def.FixedDelay
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = def.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = def.MaxBackoff
	}
	if c.BackoffMultiplier <= 0 {
		c.BackoffMultiplier = def.BackoffMultiplier
	}
	return c
}

// backoff computes exponential backoff with +/-25% jitter, capped at
// MaxBackoff.
func (c Config) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > c.MaxRetries {
		return c.MaxBackoff
	}

	base := float64(c.InitialBackoff) * math.Pow(c.BackoffMultiplier, float64(attempt-1))
	base = math.Min(base, float64(c.MaxBackoff))

	jitter := base * 0.25 * (2*rand.Float64() - 1)
	d := math.Min(math.Max(base+jitter, 0), float64(c.MaxBackoff))
	return time.Duration(d)
}
