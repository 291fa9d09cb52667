package db

import (
	"context"
	"time"

	"github.com/Sam-Ezzat/rodood-db/internal/retry"
	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// Prober issues a minimal liveness query against the shared pool and
// retries transient failures on a fixed delay, up to a bounded attempt
// count.
//
// One probe is a single logical flow: attempts are strictly sequential, and
// the delay between them suspends only the probing goroutine. Other users
// of the pool are unaffected.
type Prober struct {
	pool   rodooddb.Pool
	config rodooddb.ProbeConfig
	logger rodooddb.Logger
	target string
	sleep  retry.SleepFunc
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithTarget sets the endpoint description used in reports and logs.
func WithTarget(target string) ProberOption {
	return func(p *Prober) { p.target = target }
}

// WithSleep replaces the inter-attempt wait. Tests inject a fake clock here.
func WithSleep(f retry.SleepFunc) ProberOption {
	return func(p *Prober) { p.sleep = f }
}

// NewProber creates a Prober over the given pool. Zero-valued config fields
// fall back to package defaults (3 attempts, 2s delay).
func NewProber(pool rodooddb.Pool, config rodooddb.ProbeConfig, logger rodooddb.Logger, opts ...ProberOption) *Prober {
	p := &Prober{
		pool:   pool,
		config: config.WithDefaults(),
		logger: logger,
		target: "database",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe reports whether the database is reachable. It never returns an
// error: every failure is logged and collapsed into false once the retry
// policy is exhausted, a permanent failure is seen, or ctx is cancelled.
func (p *Prober) Probe(ctx context.Context) bool {
	return p.Run(ctx).Reachable
}

// Run executes the probe and returns the full report.
func (p *Prober) Run(ctx context.Context) *rodooddb.Report {
	report := rodooddb.NewReport(p.target)
	p.logger.Verbose("probe %s: starting against %s (max %d attempts, %v delay)",
		report.RunID, p.target, p.config.MaxAttempts, p.config.RetryDelay)

	var execOpts []retry.Option
	execOpts = append(execOpts,
		retry.WithOnAttempt(func(attempt int, err error, kind rodooddb.ErrorKind) {
			if n := len(report.Attempts); n > 0 {
				report.Attempts[n-1].Kind = kind.String()
			}
			p.logger.Error("probe %s: attempt %d/%d failed (%s): %v",
				report.RunID, attempt, p.config.MaxAttempts, kind, err)
		}),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			p.logger.Info("probe %s: retrying in %v", report.RunID, delay)
		}),
	)
	if p.sleep != nil {
		execOpts = append(execOpts, retry.WithSleep(p.sleep))
	}

	executor := retry.NewExecutor(
		retry.NewPostgresClassifier(),
		retry.NewFixedBackoff(p.config.MaxAttempts, p.config.RetryDelay),
		execOpts...,
	)

	err := executor.Execute(ctx, func(ctx context.Context) error {
		attemptCtx := ctx
		if p.config.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.config.AttemptTimeout)
			defer cancel()
		}

		start := time.Now()
		var one int
		scanErr := p.pool.QueryRow(attemptCtx, rodooddb.LivenessQuery).Scan(&one)

		attempt := rodooddb.Attempt{
			Number:  len(report.Attempts) + 1,
			Latency: time.Since(start),
			OK:      scanErr == nil,
		}
		if scanErr != nil {
			attempt.Error = scanErr.Error()
		}
		report.Attempts = append(report.Attempts, attempt)
		return scanErr
	})

	report.Reachable = err == nil
	report.Elapsed = time.Since(report.StartedAt)

	if report.Reachable {
		p.logger.Info("probe %s: %s reachable after %d attempt(s) in %v",
			report.RunID, p.target, len(report.Attempts), report.Elapsed)
	} else {
		p.logger.Error("probe %s: %s unreachable after %d attempt(s): %v",
			report.RunID, p.target, len(report.Attempts), err)
	}
	return report
}

// TestConnection probes the pool with the default retry policy (3 attempts,
// 2s fixed delay) and reports reachability. This is the one-call surface
// for startup checks.
func TestConnection(ctx context.Context, pool rodooddb.Pool, logger rodooddb.Logger) bool {
	return NewProber(pool, rodooddb.ProbeConfig{}, logger).Probe(ctx)
}
