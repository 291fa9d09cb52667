package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam-Ezzat/rodood-db/internal/retry"
	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// PasswordConnector establishes the pool using standard username/password
// authentication, retrying transient failures with exponential backoff.
type PasswordConnector struct {
	config   rodooddb.PoolConfig
	logger   rodooddb.Logger
	executor *retry.Executor
}

// NewPasswordConnector creates a PasswordConnector with the default retry
// policy for pool establishment.
func NewPasswordConnector(config rodooddb.PoolConfig, logger rodooddb.Logger) *PasswordConnector {
	executor := retry.NewExecutor(
		retry.NewPostgresClassifier(),
		retry.NewExponentialBackoff(rodooddb.DefaultProbeMaxAttempts),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("connect attempt %d failed (%v), retrying in %v", attempt, err, delay)
		}),
	)
	return &PasswordConnector{config: config, logger: logger, executor: executor}
}

// Connect establishes the connection pool and verifies it with a ping.
func (c *PasswordConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := BuildPoolConfig(c.config)
		if err != nil {
			return err
		}

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectError(err, c.config)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectError(err, c.config)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// NewConnector returns the Connector matching the config's auth method.
func NewConnector(config rodooddb.PoolConfig, logger rodooddb.Logger) (rodooddb.Connector, error) {
	switch config.AuthMethod {
	case rodooddb.AuthMethodStandard:
		return NewPasswordConnector(config, logger), nil
	case rodooddb.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case rodooddb.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case rodooddb.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, rodooddb.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectError attaches a short hint to raw connection errors so the
// operator sees the likely cause without reading pgx internals.
func wrapConnectError(err error, cfg rodooddb.PoolConfig) error {
	errStr := strings.ToLower(err.Error())
	target := Target(cfg)

	switch {
	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf("%s refused the connection (server down, wrong port, or firewall): %w", target, err)
	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf("cannot resolve host for %s (check the hostname and DNS): %w", target, err)
	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf("authentication rejected for %s (check credentials): %w", target, err)
	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf("database missing at %s: %w", target, err)
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf("connection to %s timed out (server overloaded or firewall dropping packets): %w", target, err)
	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf("transport security negotiation with %s failed (check sslmode): %w", target, err)
	default:
		return fmt.Errorf("failed to connect to %s: %w", target, err)
	}
}
