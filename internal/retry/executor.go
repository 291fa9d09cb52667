package retry

import (
	"context"
	"time"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case. Tests substitute a recording implementation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext is the production SleepFunc. It suspends only the
// calling goroutine.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Executor runs an operation under a retry policy.
//
// Attempts are strictly sequential: attempt N+1 never starts before attempt
// N's outcome is known. Permanent failures stop the loop immediately;
// transient and unknown failures are retried until the policy's attempt
// bound is reached.
type Executor struct {
	classifier rodooddb.ErrorClassifier
	policy     rodooddb.BackoffStrategy
	sleep      SleepFunc
	onAttempt  func(attempt int, err error, kind rodooddb.ErrorKind)
	onRetry    func(attempt int, err error, delay time.Duration)
}

// Option configures an Executor.
type Option func(*Executor)

// WithSleep replaces the wait implementation. Tests use this to run retry
// sequences against a fake clock.
func WithSleep(f SleepFunc) Option {
	return func(e *Executor) { e.sleep = f }
}

// WithOnAttempt registers a callback invoked after every failed attempt,
// before the retry decision. attempt is 1-based.
func WithOnAttempt(f func(attempt int, err error, kind rodooddb.ErrorKind)) Option {
	return func(e *Executor) { e.onAttempt = f }
}

// WithOnRetry registers a callback invoked when a retry has been scheduled,
// before the wait. attempt is the 1-based number of the attempt that failed.
func WithOnRetry(f func(attempt int, err error, delay time.Duration)) Option {
	return func(e *Executor) { e.onRetry = f }
}

// NewExecutor creates an Executor. Panics if classifier or policy is nil;
// both are wiring-time dependencies, not runtime inputs.
func NewExecutor(classifier rodooddb.ErrorClassifier, policy rodooddb.BackoffStrategy, opts ...Option) *Executor {
	if classifier == nil {
		panic("retry: classifier cannot be nil")
	}
	if policy == nil {
		panic("retry: policy cannot be nil")
	}
	e := &Executor{
		classifier: classifier,
		policy:     policy,
		sleep:      sleepWithContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs operation until it succeeds, fails permanently, the attempt
// bound is reached, or ctx is cancelled. Returns nil on success, the last
// operation error on exhaustion or permanent failure, and ctx.Err() on
// cancellation.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.policy.MaxAttempts()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr := operation(ctx)
		if lastErr == nil {
			return nil
		}

		kind := e.classifier.Classify(lastErr)
		if e.onAttempt != nil {
			e.onAttempt(attempt, lastErr, kind)
		}

		if kind == rodooddb.KindPermanent {
			return lastErr
		}
		if maxAttempts >= 0 && attempt >= maxAttempts {
			return lastErr
		}

		delay := e.policy.NextDelay(attempt - 1)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}
		if err := e.sleep(ctx, delay); err != nil {
			return err
		}
	}
}
