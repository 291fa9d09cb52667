package rodooddb

import (
	"errors"
	"fmt"
	"time"
)

// PoolConfig describes the shared connection pool. It is constructed once at
// process startup and never mutated afterwards; components receive it (or the
// pool built from it) by explicit injection.
type PoolConfig struct {
	// ConnString is the PostgreSQL connection URI. Required.
	ConnString string

	// MaxConns bounds concurrent physical connections (0 = DefaultMaxConns).
	MaxConns int32

	// MinConns is the number of connections the pool keeps open (0 = lazy).
	MinConns int32

	// MaxConnIdleTime closes connections idle beyond this bound
	// (0 = DefaultMaxConnIdleTime).
	MaxConnIdleTime time.Duration

	// ConnectTimeout bounds establishment of a new physical connection
	// (0 = DefaultConnectTimeout).
	ConnectTimeout time.Duration

	// SSLMode overrides the transport security mode from the connection
	// string ("require", "verify-full", ...). Empty leaves the connection
	// string's value in place.
	SSLMode string

	// DisablePreparedStatements switches the pool to the simple query
	// protocol. Required behind transaction-pooling proxies, where
	// server-side statement caches do not survive connection handoff.
	DisablePreparedStatements bool

	// AppName is reported to the server as application_name.
	AppName string

	// AuthMethod selects the authentication mechanism.
	AuthMethod AuthMethod

	// AWSRegion is the RDS region (AuthMethodAWSIAM).
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name in
	// project:region:instance format (AuthMethodGoogleIAM).
	GoogleInstance string

	// Azure Entra ID credentials (AuthMethodAzureEntraID). If all three
	// are set, Service Principal auth is used; otherwise the
	// DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks the PoolConfig. Returns a joined error listing every
// problem found.
func (c *PoolConfig) Validate() error {
	var errs []error

	if c.ConnString == "" {
		errs = append(errs, fmt.Errorf("connection string is required (set DATABASE_URL or pass --connection): %w", ErrMissingConnString))
	}
	if c.MaxConns < 0 {
		errs = append(errs, fmt.Errorf("max conns cannot be negative: %w", ErrInvalidConfig))
	}
	if c.MinConns < 0 {
		errs = append(errs, fmt.Errorf("min conns cannot be negative: %w", ErrInvalidConfig))
	}
	if c.MaxConns > 0 && c.MinConns > c.MaxConns {
		errs = append(errs, fmt.Errorf("min conns (%d) exceeds max conns (%d): %w", c.MinConns, c.MaxConns, ErrInvalidConfig))
	}
	if c.MaxConnIdleTime < 0 {
		errs = append(errs, fmt.Errorf("idle timeout cannot be negative: %w", ErrInvalidConfig))
	}
	if c.ConnectTimeout < 0 {
		errs = append(errs, fmt.Errorf("connect timeout cannot be negative: %w", ErrInvalidConfig))
	}
	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v is not valid: %w", c.AuthMethod, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// WithDefaults returns a copy with zero-valued pool knobs replaced by the
// package defaults. The receiver is not modified.
func (c PoolConfig) WithDefaults() PoolConfig {
	if c.MaxConns == 0 {
		c.MaxConns = DefaultMaxConns
	}
	if c.MaxConnIdleTime == 0 {
		c.MaxConnIdleTime = DefaultMaxConnIdleTime
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	return c
}

// ProbeConfig holds the connectivity probe's retry parameters. Zero values
// fall back to the package defaults via WithDefaults.
type ProbeConfig struct {
	// MaxAttempts is the total number of liveness attempts, including the
	// first one.
	MaxAttempts int

	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration

	// AttemptTimeout bounds a single liveness round trip. Zero disables
	// the per-attempt deadline and relies on the pool's own timeouts.
	AttemptTimeout time.Duration
}

// Validate checks the ProbeConfig.
func (c *ProbeConfig) Validate() error {
	var errs []error

	if c.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("max attempts cannot be negative: %w", ErrInvalidConfig))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry delay cannot be negative: %w", ErrInvalidConfig))
	}
	if c.AttemptTimeout < 0 {
		errs = append(errs, fmt.Errorf("attempt timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// WithDefaults returns a copy with zero values replaced by the package
// defaults.
func (c ProbeConfig) WithDefaults() ProbeConfig {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultProbeMaxAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultProbeRetryDelay
	}
	if c.AttemptTimeout == 0 {
		c.AttemptTimeout = DefaultProbeAttemptTimeout
	}
	return c
}

// AuthMethod represents the authentication mechanism used to reach the
// database.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM database authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Entra ID
)

// String returns a human-readable name for the auth method.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// IsValid reports whether the AuthMethod is a defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
