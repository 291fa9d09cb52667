package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// PostgreSQL error codes relevant to connectivity classification.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	// Class 40 - Transaction Rollback (retryable members)
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"

	// Class 55 - Object Not In Prerequisite State
	pgCodeLockNotAvailable = "55P03"

	// Permanent conditions
	pgCodeInvalidPassword       = "28P01"
	pgCodeInvalidAuthorization  = "28000"
	pgCodeInvalidCatalogName    = "3D000" // database does not exist
	pgCodeInsufficientPrivilege = "42501"
)

// transientMessagePatterns is the last-resort fallback for errors that carry
// no structured code. Matched lowercase. "authentication timed out" is the
// failure mode of credential negotiation against pooled proxies and must be
// treated as transient.
var transientMessagePatterns = []string{
	"authentication timed out",
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"connection pool exhausted",
}

// permanentMessagePatterns marks failures that retrying cannot fix.
var permanentMessagePatterns = []string{
	"password authentication failed",
	"role \"",
	"does not exist",
	"permission denied",
	"ssl is not enabled",
}

// PostgresClassifier implements rodooddb.ErrorClassifier for PostgreSQL and
// network errors.
type PostgresClassifier struct{}

// NewPostgresClassifier creates a new PostgresClassifier.
func NewPostgresClassifier() *PostgresClassifier {
	return &PostgresClassifier{}
}

// Classify places an error into transient, permanent, or unknown.
func (c *PostgresClassifier) Classify(err error) rodooddb.ErrorKind {
	if err == nil {
		return rodooddb.KindUnknown
	}

	// Cancellation is the caller's decision; never retry past it.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return rodooddb.KindPermanent
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return c.classifyPgError(pgErr)
	}

	if kind, ok := c.classifyNetError(err); ok {
		return kind
	}

	return c.classifyMessage(err)
}

// classifyPgError maps structured PostgreSQL error codes.
func (c *PostgresClassifier) classifyPgError(pgErr *pgconn.PgError) rodooddb.ErrorKind {
	code := pgErr.Code

	switch {
	// Class 08 - Connection Exception
	case strings.HasPrefix(code, "08"):
		return rodooddb.KindTransient

	// Class 53 - Insufficient Resources (disk full, out of memory,
	// too many connections)
	case strings.HasPrefix(code, "53"):
		return rodooddb.KindTransient

	// Class 57 - Operator Intervention (admin shutdown, crash shutdown,
	// cannot connect now)
	case strings.HasPrefix(code, "57"):
		return rodooddb.KindTransient
	}

	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return rodooddb.KindTransient

	case pgCodeInvalidPassword, pgCodeInvalidAuthorization,
		pgCodeInvalidCatalogName, pgCodeInsufficientPrivilege:
		return rodooddb.KindPermanent
	}

	// Class 28 - Invalid Authorization Specification: credentials are
	// wrong, retry cannot help.
	if strings.HasPrefix(code, "28") {
		return rodooddb.KindPermanent
	}

	// Class 42 - Syntax Error or Access Rule Violation.
	if strings.HasPrefix(code, "42") {
		return rodooddb.KindPermanent
	}

	return rodooddb.KindUnknown
}

// classifyNetError inspects network-level error types. The second return
// value reports whether the error was recognized as a network error.
func (c *PostgresClassifier) classifyNetError(err error) (rodooddb.ErrorKind, bool) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			// Misspelled host is not going to resolve on retry within
			// a probe's window, but DNS outages look identical.
			return rodooddb.KindTransient, true
		}
		return rodooddb.KindTransient, true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return rodooddb.KindTransient, true
		}
		if opErr.Err != nil {
			switch {
			case errors.Is(opErr.Err, syscall.ECONNREFUSED),
				errors.Is(opErr.Err, syscall.ECONNRESET),
				errors.Is(opErr.Err, syscall.ENETUNREACH),
				errors.Is(opErr.Err, syscall.EHOSTUNREACH):
				return rodooddb.KindTransient, true
			}
		}
		return rodooddb.KindTransient, true
	}

	return rodooddb.KindUnknown, false
}

// classifyMessage is the free-text fallback.
func (c *PostgresClassifier) classifyMessage(err error) rodooddb.ErrorKind {
	msg := strings.ToLower(err.Error())

	for _, pattern := range transientMessagePatterns {
		if strings.Contains(msg, pattern) {
			return rodooddb.KindTransient
		}
	}
	for _, pattern := range permanentMessagePatterns {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return rodooddb.KindPermanent
		}
	}

	return rodooddb.KindUnknown
}
