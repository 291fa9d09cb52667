package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

func TestPostgresClassifier_PgErrorCodes(t *testing.T) {
	classifier := NewPostgresClassifier()

	tests := []struct {
		name string
		err  error
		want rodooddb.ErrorKind
	}{
		// Transient: connection exceptions
		{
			name: "connection_exception (08000)",
			err:  &pgconn.PgError{Code: "08000", Message: "connection exception"},
			want: rodooddb.KindTransient,
		},
		{
			name: "connection_failure (08006)",
			err:  &pgconn.PgError{Code: "08006", Message: "connection failure"},
			want: rodooddb.KindTransient,
		},
		{
			name: "sqlclient_unable_to_establish_sqlconnection (08001)",
			err:  &pgconn.PgError{Code: "08001", Message: "could not establish connection"},
			want: rodooddb.KindTransient,
		},

		// Transient: insufficient resources
		{
			name: "too_many_connections (53300)",
			err:  &pgconn.PgError{Code: "53300", Message: "too many connections"},
			want: rodooddb.KindTransient,
		},
		{
			name: "out_of_memory (53200)",
			err:  &pgconn.PgError{Code: "53200", Message: "out of memory"},
			want: rodooddb.KindTransient,
		},

		// Transient: operator intervention
		{
			name: "cannot_connect_now (57P03)",
			err:  &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"},
			want: rodooddb.KindTransient,
		},
		{
			name: "admin_shutdown (57P01)",
			err:  &pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"},
			want: rodooddb.KindTransient,
		},

		// Transient: rollback and lock conditions
		{
			name: "serialization_failure (40001)",
			err:  &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			want: rodooddb.KindTransient,
		},
		{
			name: "deadlock_detected (40P01)",
			err:  &pgconn.PgError{Code: "40P01", Message: "deadlock detected"},
			want: rodooddb.KindTransient,
		},
		{
			name: "lock_not_available (55P03)",
			err:  &pgconn.PgError{Code: "55P03", Message: "could not obtain lock"},
			want: rodooddb.KindTransient,
		},

		// Permanent: authorization and catalog
		{
			name: "invalid_password (28P01)",
			err:  &pgconn.PgError{Code: "28P01", Message: "password authentication failed"},
			want: rodooddb.KindPermanent,
		},
		{
			name: "invalid_authorization (28000)",
			err:  &pgconn.PgError{Code: "28000", Message: "role is not permitted to log in"},
			want: rodooddb.KindPermanent,
		},
		{
			name: "database_does_not_exist (3D000)",
			err:  &pgconn.PgError{Code: "3D000", Message: "database \"nope\" does not exist"},
			want: rodooddb.KindPermanent,
		},
		{
			name: "syntax_error (42601)",
			err:  &pgconn.PgError{Code: "42601", Message: "syntax error at or near"},
			want: rodooddb.KindPermanent,
		},
		{
			name: "insufficient_privilege (42501)",
			err:  &pgconn.PgError{Code: "42501", Message: "permission denied"},
			want: rodooddb.KindPermanent,
		},

		// Unknown: codes with no connectivity meaning
		{
			name: "data_exception (22012)",
			err:  &pgconn.PgError{Code: "22012", Message: "division by zero"},
			want: rodooddb.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPostgresClassifier_NetworkErrors(t *testing.T) {
	classifier := NewPostgresClassifier()

	tests := []struct {
		name string
		err  error
		want rodooddb.ErrorKind
	}{
		{
			name: "dns temporary failure",
			err:  &net.DNSError{Err: "server misbehaving", IsTemporary: true},
			want: rodooddb.KindTransient,
		},
		{
			name: "dns not found",
			err:  &net.DNSError{Err: "no such host", IsNotFound: true},
			want: rodooddb.KindTransient,
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			want: rodooddb.KindTransient,
		},
		{
			name: "connection reset",
			err:  &net.OpError{Op: "read", Err: syscall.ECONNRESET},
			want: rodooddb.KindTransient,
		},
		{
			name: "host unreachable",
			err:  &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH},
			want: rodooddb.KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPostgresClassifier_MessageFallback(t *testing.T) {
	classifier := NewPostgresClassifier()

	tests := []struct {
		name string
		msg  string
		want rodooddb.ErrorKind
	}{
		{"authentication timed out", "Authentication timed out", rodooddb.KindTransient},
		{"authentication timed out lowercase", "authentication timed out after 10s", rodooddb.KindTransient},
		{"connection refused text", "dial tcp 127.0.0.1:5432: connection refused", rodooddb.KindTransient},
		{"io timeout", "read tcp: i/o timeout", rodooddb.KindTransient},
		{"server closed connection", "server closed the connection unexpectedly", rodooddb.KindTransient},
		{"pool exhausted", "connection pool exhausted", rodooddb.KindTransient},
		{"password auth failed", "FATAL: password authentication failed for user \"app\"", rodooddb.KindPermanent},
		{"database missing", "FATAL: database \"rodood\" does not exist", rodooddb.KindPermanent},
		{"unclassifiable", "something odd happened", rodooddb.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(errors.New(tt.msg)); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestPostgresClassifier_ContextErrors(t *testing.T) {
	classifier := NewPostgresClassifier()

	if got := classifier.Classify(context.Canceled); got != rodooddb.KindPermanent {
		t.Errorf("Classify(context.Canceled) = %v, want permanent", got)
	}
	if got := classifier.Classify(fmt.Errorf("ping: %w", context.DeadlineExceeded)); got != rodooddb.KindPermanent {
		t.Errorf("Classify(wrapped DeadlineExceeded) = %v, want permanent", got)
	}
}

func TestPostgresClassifier_WrappedPgError(t *testing.T) {
	classifier := NewPostgresClassifier()

	err := fmt.Errorf("liveness query: %w", &pgconn.PgError{Code: "08006", Message: "connection failure"})
	if got := classifier.Classify(err); got != rodooddb.KindTransient {
		t.Errorf("Classify(wrapped PgError) = %v, want transient", got)
	}
}

func TestPostgresClassifier_NilError(t *testing.T) {
	classifier := NewPostgresClassifier()

	if got := classifier.Classify(nil); got != rodooddb.KindUnknown {
		t.Errorf("Classify(nil) = %v, want unknown", got)
	}
}
