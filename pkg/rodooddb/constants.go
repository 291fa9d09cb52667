package rodooddb

import "time"

// Exit codes for semantic error classification, following Unix/GNU
// conventions: 0 success, 1 general error, 2 CLI usage error, 3+ application
// specific.
const (
	ExitSuccess         = 0  // Probe succeeded / command completed
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid or missing configuration
	ExitUnreachable     = 11 // Database is not reachable
	ExitProbeAborted    = 12 // Probe cancelled before a verdict was reached
)

// Pool defaults. These mirror the production deployment the layer was
// extracted from: a modest pool behind a connection proxy.
const (
	// DefaultMaxConns bounds concurrent physical connections.
	DefaultMaxConns = 10

	// DefaultMinConns keeps the pool fully lazy; connections are only
	// opened on demand.
	DefaultMinConns = 0

	// DefaultMaxConnIdleTime closes connections idle beyond this bound.
	DefaultMaxConnIdleTime = 30 * time.Second

	// DefaultConnectTimeout bounds establishment of a new physical
	// connection.
	DefaultConnectTimeout = 10 * time.Second
)

// Probe defaults. The values are the original deployment's fixed retry
// parameters, now exposed as configuration.
const (
	// DefaultProbeMaxAttempts is the total number of liveness attempts,
	// including the first one.
	DefaultProbeMaxAttempts = 3

	// DefaultProbeRetryDelay is the fixed delay between attempts.
	DefaultProbeRetryDelay = 2 * time.Second

	// DefaultProbeAttemptTimeout bounds a single liveness round trip so a
	// hung connection cannot stall the whole probe.
	DefaultProbeAttemptTimeout = 5 * time.Second
)

// LivenessQuery is the minimal round-trip query issued by the prober.
const LivenessQuery = "SELECT 1"
