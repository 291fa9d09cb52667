package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// PoolAdapter wraps *pgxpool.Pool behind the rodooddb.Pool interface so the
// prober and application components stay free of pgx-specific types.
//
// Thread-Safety: safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter wraps the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

// Ping verifies a round trip on a pooled connection.
func (p *PoolAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Exec executes a query without returning rows.
func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

// QueryRow executes a query expected to return at most one row.
func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) rodooddb.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Close releases all pool resources.
func (p *PoolAdapter) Close() {
	p.pool.Close()
}

// Unwrap exposes the underlying pgx pool for application code that needs
// driver-level features.
func (p *PoolAdapter) Unwrap() *pgxpool.Pool {
	return p.pool
}

var _ rodooddb.Pool = (*PoolAdapter)(nil)
