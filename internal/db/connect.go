package db

import (
	"context"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// Connect validates the config, selects the connector for its auth method,
// and returns the established pool behind the rodooddb.Pool interface. This
// is the single entry point the application uses at startup; the returned
// handle is then injected into every component that needs database access.
func Connect(ctx context.Context, config rodooddb.PoolConfig, logger rodooddb.Logger) (rodooddb.Pool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	connector, err := NewConnector(config, logger)
	if err != nil {
		return nil, err
	}

	logger.Verbose("connecting to %s (auth: %s)", Target(config), config.AuthMethod)
	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return NewPoolAdapter(pool), nil
}
