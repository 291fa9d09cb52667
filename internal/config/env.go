package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored; a .env file is a convenience, not a requirement.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// EnvVars is a snapshot of the environment variables the connectivity layer
// recognizes. PG* names follow standard PostgreSQL client conventions;
// cloud variables follow their SDK conventions.
type EnvVars struct {
	DatabaseURL string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string
	PGSSLMode  string

	AWSRegion string

	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// FromEnvironment snapshots the recognized environment variables.
func FromEnvironment() *EnvVars {
	return &EnvVars{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PGHost:            os.Getenv("PGHOST"),
		PGPort:            os.Getenv("PGPORT"),
		PGUser:            os.Getenv("PGUSER"),
		PGPassword:        os.Getenv("PGPASSWORD"),
		PGDatabase:        os.Getenv("PGDATABASE"),
		PGSSLMode:         os.Getenv("PGSSLMODE"),
		AWSRegion:         os.Getenv("AWS_REGION"),
		AzureTenantID:     os.Getenv("AZURE_TENANT_ID"),
		AzureClientID:     os.Getenv("AZURE_CLIENT_ID"),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ConnString returns the connection string implied by the environment:
// DATABASE_URL wins; otherwise one is assembled from the granular PG*
// variables when both PGHOST and PGDATABASE are present. Returns "" when
// the environment provides no connection source.
func (e *EnvVars) ConnString() string {
	if e.DatabaseURL != "" {
		return e.DatabaseURL
	}
	if e.PGHost == "" || e.PGDatabase == "" {
		return ""
	}

	u := &url.URL{
		Scheme: "postgresql",
		Host:   e.PGHost,
		Path:   "/" + e.PGDatabase,
	}
	if e.PGPort != "" {
		u.Host = e.PGHost + ":" + e.PGPort
	}
	if e.PGUser != "" {
		if e.PGPassword != "" {
			u.User = url.UserPassword(e.PGUser, e.PGPassword)
		} else {
			u.User = url.User(e.PGUser)
		}
	}
	if e.PGSSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", e.PGSSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// HasAzureCredentials reports whether Entra ID credentials are present.
func (e *EnvVars) HasAzureCredentials() bool {
	return e.AzureTenantID != "" || e.AzureClientID != ""
}
