package retry

import (
	"time"
)

// FixedBackoff waits the same delay between every attempt. This is the
// probe's default policy: a health check wants predictable, bounded timing,
// not an ever-growing tail.
type FixedBackoff struct {
	delay       time.Duration
	maxAttempts int
}

// NewFixedBackoff creates a fixed-delay policy. maxAttempts is the total
// number of attempts including the first (1 = no retries, -1 = unlimited).
func NewFixedBackoff(maxAttempts int, delay time.Duration) *FixedBackoff {
	return &FixedBackoff{delay: delay, maxAttempts: maxAttempts}
}

// NextDelay returns the fixed delay regardless of attempt number.
func (b *FixedBackoff) NextDelay(attempt int) time.Duration {
	return b.delay
}

// MaxAttempts returns the total attempt bound.
func (b *FixedBackoff) MaxAttempts() int {
	return b.maxAttempts
}

// ExponentialBackoff grows the delay geometrically up to a cap. Used for
// pool establishment, where the caller is willing to wait out a restarting
// server.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int
}

// ExpOption configures an ExponentialBackoff.
type ExpOption func(*ExponentialBackoff)

// WithInitialDelay sets the delay after the first failed attempt.
func WithInitialDelay(d time.Duration) ExpOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) ExpOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between attempts.
func WithMultiplier(m float64) ExpOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// NewExponentialBackoff creates an exponential policy with sensible
// defaults: 100ms initial delay, doubling, capped at 30s.
func NewExponentialBackoff(maxAttempts int, opts ...ExpOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns initialDelay * multiplier^attempt, capped at maxDelay.
// attempt is zero-indexed.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initialDelay)
	for i := 0; i < attempt; i++ {
		delay *= b.multiplier
		if delay >= float64(b.maxDelay) {
			return b.maxDelay
		}
	}
	if delay > float64(b.maxDelay) {
		return b.maxDelay
	}
	return time.Duration(delay)
}

// MaxAttempts returns the total attempt bound.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}
