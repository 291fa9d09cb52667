package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sam-Ezzat/rodood-db/internal/logging"
	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// scriptedPool implements rodooddb.Pool with a fixed sequence of liveness
// outcomes. A nil entry means success; after the script runs out, calls
// succeed.
type scriptedPool struct {
	script []error
	calls  int
}

type scriptedRow struct{ err error }

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*int); ok {
			*p = 1
		}
	}
	return nil
}

func (p *scriptedPool) QueryRow(ctx context.Context, sql string, args ...any) rodooddb.Row {
	if err := ctx.Err(); err != nil {
		p.calls++
		return scriptedRow{err: err}
	}
	var err error
	if p.calls < len(p.script) {
		err = p.script[p.calls]
	}
	p.calls++
	return scriptedRow{err: err}
}

func (p *scriptedPool) Ping(ctx context.Context) error {
	return scriptedRow{}.Scan()
}

func (p *scriptedPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *scriptedPool) Close() {}

// recordingSleeper captures delays without waiting.
type recordingSleeper struct {
	delays []time.Duration
}

func (s *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

var errAuthTimedOut = errors.New("Authentication timed out")

func newTestProber(pool rodooddb.Pool, sleeper *recordingSleeper) *Prober {
	return NewProber(pool, rodooddb.ProbeConfig{
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
	}, logging.NewNullLogger(),
		WithTarget("localhost:5432/rodood"),
		WithSleep(sleeper.sleep),
	)
}

func TestProber_SuccessOnFirstAttempt(t *testing.T) {
	pool := &scriptedPool{}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	if !prober.Probe(context.Background()) {
		t.Fatal("expected reachable")
	}
	if pool.calls != 1 {
		t.Errorf("expected 1 liveness query, got %d", pool.calls)
	}
	if len(sleeper.delays) != 0 {
		t.Errorf("expected no delays, got %v", sleeper.delays)
	}
}

func TestProber_AuthTimeoutRetriedThenSuccess(t *testing.T) {
	pool := &scriptedPool{script: []error{errAuthTimedOut, errAuthTimedOut, nil}}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	report := prober.Run(context.Background())

	if !report.Reachable {
		t.Fatal("expected reachable after retries")
	}
	if pool.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", pool.calls)
	}
	if len(sleeper.delays) != 2 {
		t.Fatalf("expected exactly 2 delays, got %d", len(sleeper.delays))
	}
	for i, d := range sleeper.delays {
		if d != 2*time.Second {
			t.Errorf("delay %d = %v, want 2s", i, d)
		}
	}
	if len(report.Attempts) != 3 {
		t.Fatalf("report has %d attempts, want 3", len(report.Attempts))
	}
	if report.Attempts[0].OK || report.Attempts[1].OK || !report.Attempts[2].OK {
		t.Errorf("attempt outcomes wrong: %+v", report.Attempts)
	}
	if report.Attempts[0].Kind != "transient" {
		t.Errorf("auth timeout classified as %q, want transient", report.Attempts[0].Kind)
	}
}

func TestProber_ExhaustionReturnsFalse(t *testing.T) {
	pool := &scriptedPool{script: []error{errAuthTimedOut, errAuthTimedOut, errAuthTimedOut, errAuthTimedOut}}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	report := prober.Run(context.Background())

	if report.Reachable {
		t.Fatal("expected unreachable")
	}
	if pool.calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", pool.calls)
	}
	if len(sleeper.delays) != 2 {
		t.Errorf("expected 2 delays, got %d", len(sleeper.delays))
	}
	if got := report.LastError(); got != errAuthTimedOut.Error() {
		t.Errorf("LastError = %q", got)
	}
}

func TestProber_PermanentFailureFailsFast(t *testing.T) {
	permanent := &pgconn.PgError{Code: "28P01", Message: "password authentication failed for user \"app\""}
	pool := &scriptedPool{script: []error{permanent, permanent, permanent}}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	report := prober.Run(context.Background())

	if report.Reachable {
		t.Fatal("expected unreachable")
	}
	if pool.calls != 1 {
		t.Errorf("permanent failure retried: %d attempts", pool.calls)
	}
	if len(sleeper.delays) != 0 {
		t.Errorf("expected no delays for permanent failure, got %v", sleeper.delays)
	}
	if report.Attempts[0].Kind != "permanent" {
		t.Errorf("Kind = %q, want permanent", report.Attempts[0].Kind)
	}
}

func TestProber_UnknownFailureIsRetried(t *testing.T) {
	pool := &scriptedPool{script: []error{errors.New("something odd happened"), nil}}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	if !prober.Probe(context.Background()) {
		t.Fatal("expected reachable after retrying unknown failure")
	}
	if pool.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", pool.calls)
	}
}

func TestProber_NoAttemptsAfterSuccess(t *testing.T) {
	pool := &scriptedPool{script: []error{errAuthTimedOut, nil}}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	report := prober.Run(context.Background())

	if !report.Reachable {
		t.Fatal("expected reachable")
	}
	if pool.calls != 2 {
		t.Errorf("attempts continued after success: %d", pool.calls)
	}
}

func TestProber_CancelledContext(t *testing.T) {
	pool := &scriptedPool{script: []error{errAuthTimedOut, errAuthTimedOut, errAuthTimedOut}}
	prober := NewProber(pool, rodooddb.ProbeConfig{MaxAttempts: 3, RetryDelay: 10 * time.Second},
		logging.NewNullLogger(), WithTarget("t"))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	reachable := prober.Probe(ctx)
	if reachable {
		t.Fatal("expected unreachable on cancellation")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation did not abort promptly (%v)", elapsed)
	}
}

func TestProber_DefaultsApplied(t *testing.T) {
	pool := &scriptedPool{}
	prober := NewProber(pool, rodooddb.ProbeConfig{}, logging.NewNullLogger())

	if prober.config.MaxAttempts != rodooddb.DefaultProbeMaxAttempts {
		t.Errorf("MaxAttempts = %d, want default", prober.config.MaxAttempts)
	}
	if prober.config.RetryDelay != rodooddb.DefaultProbeRetryDelay {
		t.Errorf("RetryDelay = %v, want default", prober.config.RetryDelay)
	}
}

func TestTestConnection(t *testing.T) {
	if !TestConnection(context.Background(), &scriptedPool{}, logging.NewNullLogger()) {
		t.Error("expected reachable pool to test true")
	}
}

func TestProber_ReportMetadata(t *testing.T) {
	pool := &scriptedPool{}
	sleeper := &recordingSleeper{}
	prober := newTestProber(pool, sleeper)

	report := prober.Run(context.Background())

	if report.Target != "localhost:5432/rodood" {
		t.Errorf("Target = %q", report.Target)
	}
	if report.Elapsed < 0 {
		t.Errorf("Elapsed = %v", report.Elapsed)
	}
	if len(report.Attempts) != 1 || report.Attempts[0].Number != 1 {
		t.Errorf("attempts = %+v", report.Attempts)
	}
}
