package rodooddb

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios. Callers distinguish them
// with errors.Is().
var (
	// ErrMissingConnString indicates no connection source was provided.
	// Raised at configuration time, before any network I/O.
	ErrMissingConnString = errors.New("no database connection string provided")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication
	// method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrUnreachable indicates the connectivity probe exhausted its
	// attempts without a successful round trip.
	ErrUnreachable = errors.New("database unreachable")
)

// ExitCodeForError returns the exit code for an error. Returns ExitSuccess
// for nil, semantic codes for known errors, ExitGeneralError otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrMissingConnString):
		return ExitConfigError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrUnreachable):
		return ExitUnreachable
	case errors.Is(err, ErrConnectionFailed):
		return ExitUnreachable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitProbeAborted
	}

	errStr := err.Error()

	// cobra reports flag/argument misuse as plain errors.
	if isUsageError(errStr) {
		return ExitUsageError
	}

	// Common connection error patterns from drivers that bypass the
	// sentinel wrapping.
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitUnreachable
	}

	return ExitGeneralError
}

func isUsageError(msg string) bool {
	usagePatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"invalid argument",
		"required flag",
		"accepts ",
	}
	for _, p := range usagePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
