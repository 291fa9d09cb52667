package rodooddb

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrorKind classifies a database failure for retry decisions.
type ErrorKind int

const (
	// KindTransient marks failures expected to clear on their own:
	// connection drops, resource exhaustion, server restarts,
	// authentication timeouts.
	KindTransient ErrorKind = iota

	// KindPermanent marks failures that will not clear without operator
	// action: bad credentials, missing database, syntax errors.
	KindPermanent

	// KindUnknown marks failures the classifier cannot place. The prober
	// treats Unknown like Transient and retries.
	KindUnknown
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrorClassifier places a failure into an ErrorKind. Implementations should
// prefer structured error codes over message text.
type ErrorClassifier interface {
	// Classify returns the kind of the error. A nil error is KindUnknown;
	// callers are expected to check for success before classifying.
	Classify(err error) ErrorKind
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the wait before the next attempt. attempt is
	// zero-indexed: 0 is the delay after the first failed attempt.
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the total number of attempts, including the
	// first (1 = no retries, -1 = unlimited).
	MaxAttempts() int
}

// Connector establishes a connection pool. Implementations handle the
// different authentication methods (password, cloud IAM tokens).
type Connector interface {
	// Connect establishes a connection pool to the database.
	// The caller owns the returned pool and must close it.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

// Pool is the narrow pool handle passed to the prober and to application
// components, decoupling them from pgx-specific types.
//
// Thread-Safety: implementations backed by pgxpool.Pool are safe for
// concurrent use.
type Pool interface {
	// Ping verifies a round trip on a pooled connection.
	Ping(ctx context.Context) error

	// Exec executes a query without returning rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query expected to return at most one row.
	// Errors are deferred until Scan.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Close releases all pool resources. Blocks until checked-out
	// connections are returned.
	Close()
}

// Row represents a single row returned by QueryRow.
type Row interface {
	// Scan reads the row values into dest. Returns an error if no row was
	// found or the scan fails.
	Scan(dest ...any) error
}
