package rodooddb_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, rodooddb.ExitSuccess},
		{"missing conn string", rodooddb.ErrMissingConnString, rodooddb.ExitConfigError},
		{"invalid config", rodooddb.ErrInvalidConfig, rodooddb.ExitConfigError},
		{"unsupported auth", rodooddb.ErrUnsupportedAuthMethod, rodooddb.ExitConfigError},
		{"unreachable", rodooddb.ErrUnreachable, rodooddb.ExitUnreachable},
		{"connection failed", rodooddb.ErrConnectionFailed, rodooddb.ExitUnreachable},
		{"wrapped sentinel", fmt.Errorf("probe: %w", rodooddb.ErrUnreachable), rodooddb.ExitUnreachable},
		{"context canceled", context.Canceled, rodooddb.ExitProbeAborted},
		{"deadline exceeded", context.DeadlineExceeded, rodooddb.ExitProbeAborted},
		{"general error", errors.New("something went wrong"), rodooddb.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rodooddb.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_UsagePatterns(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag: --foo"), rodooddb.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), rodooddb.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), rodooddb.ExitUsageError},
		{"required flag", errors.New("required flag \"connection\" not set"), rodooddb.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--attempts\""), rodooddb.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rodooddb.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_DriverPatterns(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"failed to connect", errors.New("failed to connect to `host=localhost`"), rodooddb.ExitUnreachable},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), rodooddb.ExitUnreachable},
		{"no such host", errors.New("lookup db.invalid: no such host"), rodooddb.ExitUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rodooddb.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
