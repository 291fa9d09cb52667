package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// GoogleCloudSQLConnector establishes the pool through the Cloud SQL Go
// Connector with IAM database authentication. The dialer owns TLS and token
// refresh; Close() must be called after the pool is closed to release it.
type GoogleCloudSQLConnector struct {
	config   rodooddb.PoolConfig
	instance string
	logger   rodooddb.Logger
	dialer   *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector creates a connector for the given instance
// connection name (project:region:instance).
func NewGoogleCloudSQLConnector(config rodooddb.PoolConfig, instance string, logger rodooddb.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, instance: instance, logger: logger}
}

// newGoogleConnector validates the config and wires the Cloud SQL connector.
func newGoogleConnector(config rodooddb.PoolConfig, logger rodooddb.Logger) (rodooddb.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("google Cloud SQL IAM auth requires an instance connection name (project:region:instance): %w", rodooddb.ErrInvalidConfig)
	}
	return NewGoogleCloudSQLConnector(config, config.GoogleInstance, logger), nil
}

// Connect establishes the pool. All traffic is routed through the Cloud SQL
// dialer, so the connection string's host is ignored.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("create Cloud SQL dialer: %w", err)
	}

	poolConfig, err := BuildPoolConfig(c.config)
	if err != nil {
		dialer.Close()
		return nil, err
	}
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		dialer.Close()
		return nil, wrapConnectError(err, c.config)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		dialer.Close()
		return nil, wrapConnectError(err, c.config)
	}

	c.dialer = dialer
	return pool, nil
}

// Close releases the Cloud SQL dialer. Call after the pool is closed.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		c.dialer.Close()
		c.dialer = nil
	}
	return nil
}
