package db

import (
	"context"
	"time"
)

// TokenProvider abstracts short-lived cloud token acquisition for database
// authentication. The token is used in place of the password.
type TokenProvider interface {
	// GetToken acquires a token and returns it with its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a loggable description. Must never include secrets.
	String() string
}

// azurePostgresScope is the OAuth resource identifier under which Entra ID
// issues tokens for Azure Database for PostgreSQL.
const azurePostgresScope = "https://ossrdbms-aad.database.windows.net/.default"
