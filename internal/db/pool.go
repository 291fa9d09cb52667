// Package db builds the shared pgx connection pool and implements the
// connectivity prober on top of it.
package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// BuildPoolConfig translates the immutable PoolConfig value object into a
// pgxpool configuration. The connection string is parsed first; explicit
// knobs then override whatever it carried.
func BuildPoolConfig(cfg rodooddb.PoolConfig) (*pgxpool.Config, error) {
	cfg = cfg.WithDefaults()

	connStr := cfg.ConnString
	if cfg.SSLMode != "" {
		var err error
		connStr, err = overrideSSLMode(connStr, cfg.SSLMode)
		if err != nil {
			return nil, err
		}
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	if cfg.AppName != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}

	if cfg.DisablePreparedStatements {
		// Transaction-pooling proxies hand each query an arbitrary server
		// connection, so server-side prepared statements cannot be reused.
		poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		poolConfig.ConnConfig.StatementCacheCapacity = 0
		poolConfig.ConnConfig.DescriptionCacheCapacity = 0
	}

	return poolConfig, nil
}

// Target returns the probed endpoint as host:port/database, without
// credentials, for logs and reports.
func Target(cfg rodooddb.PoolConfig) string {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return "(unparsed target)"
	}
	cc := poolConfig.ConnConfig
	return fmt.Sprintf("%s:%d/%s", cc.Host, cc.Port, cc.Database)
}

// overrideSSLMode forces the given sslmode onto a connection string,
// replacing any existing value. Supports URI and keyword/value DSN formats.
func overrideSSLMode(connStr, sslMode string) (string, error) {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", fmt.Errorf("parse connection URI: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", sslMode)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	// Keyword/value DSN: drop any existing sslmode token, then append.
	fields := strings.Fields(connStr)
	kept := fields[:0]
	for _, f := range fields {
		if !strings.HasPrefix(f, "sslmode=") {
			kept = append(kept, f)
		}
	}
	return strings.Join(append(kept, "sslmode="+sslMode), " "), nil
}
