package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam-Ezzat/rodood-db/internal/retry"
	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// TokenConnector establishes the pool using a short-lived cloud token as the
// password (AWS IAM, Azure Entra ID). The token is re-acquired on every
// attempt so a retry never reuses an expired credential.
type TokenConnector struct {
	config       rodooddb.PoolConfig
	provider     TokenProvider
	logger       rodooddb.Logger
	executor     *retry.Executor
	providerName string
}

// NewTokenConnector creates a connector over the given token provider.
// providerName appears in diagnostics (e.g. "AWS IAM", "Azure").
func NewTokenConnector(config rodooddb.PoolConfig, provider TokenProvider, providerName string, logger rodooddb.Logger) *TokenConnector {
	executor := retry.NewExecutor(
		retry.NewPostgresClassifier(),
		retry.NewExponentialBackoff(rodooddb.DefaultProbeMaxAttempts),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("connect attempt %d failed (%v), retrying in %v", attempt, err, delay)
		}),
	)
	return &TokenConnector{
		config:       config,
		provider:     provider,
		logger:       logger,
		executor:     executor,
		providerName: providerName,
	}
}

// Connect acquires a token, establishes the pool, and verifies it with a
// ping, all under retry.
func (c *TokenConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("acquire %s token: %w", c.providerName, err)
		}
		if remaining := time.Until(expiresOn); remaining < 5*time.Minute {
			c.logger.Info("warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
		}

		poolConfig, err := BuildPoolConfig(c.config)
		if err != nil {
			return err
		}
		poolConfig.ConnConfig.Password = token

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

// newAWSConnector wires the AWS RDS IAM token provider.
func newAWSConnector(config rodooddb.PoolConfig, logger rodooddb.Logger) (rodooddb.Connector, error) {
	poolConfig, err := pgxpool.ParseConfig(config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	cc := poolConfig.ConnConfig

	endpoint := fmt.Sprintf("%s:%d", cc.Host, cc.Port)
	provider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, cc.User)
	if err != nil {
		return nil, fmt.Errorf("create AWS IAM token provider: %w", err)
	}

	return NewTokenConnector(config, provider, "AWS IAM", logger), nil
}

// newAzureConnector wires the Azure Entra ID token provider. Explicit
// Service Principal credentials win; otherwise the default credential chain
// is used.
func newAzureConnector(config rodooddb.PoolConfig, logger rodooddb.Logger) (rodooddb.Connector, error) {
	var provider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		provider, err = NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	} else {
		provider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("create Azure token provider: %w", err)
	}

	return NewTokenConnector(config, provider, "Azure", logger), nil
}
