// Package config resolves the pool and probe configuration from CLI
// overrides, environment variables, an optional .env file, and an optional
// project YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the project config file does not
// exist. Callers check it with errors.Is; a missing file is not fatal.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = "rodood-db.yaml"

// FileConfig mirrors the YAML layout of rodood-db.yaml. Duration fields are
// strings in Go syntax ("30s", "2s") and parsed during resolution.
type FileConfig struct {
	Connection ConnectionSection `yaml:"connection"`
	Pool       PoolSection       `yaml:"pool"`
	Probe      ProbeSection      `yaml:"probe"`
}

type ConnectionSection struct {
	URL            string `yaml:"url,omitempty"`
	SSLMode        string `yaml:"sslmode,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
}

type PoolSection struct {
	MaxConns                  int32  `yaml:"max_conns,omitempty"`
	MinConns                  int32  `yaml:"min_conns,omitempty"`
	MaxConnIdleTime           string `yaml:"max_conn_idle_time,omitempty"`
	ConnectTimeout            string `yaml:"connect_timeout,omitempty"`
	DisablePreparedStatements bool   `yaml:"disable_prepared_statements,omitempty"`
	AppName                   string `yaml:"app_name,omitempty"`
}

type ProbeSection struct {
	MaxAttempts    int    `yaml:"max_attempts,omitempty"`
	RetryDelay     string `yaml:"retry_delay,omitempty"`
	AttemptTimeout string `yaml:"attempt_timeout,omitempty"`
}

// LoadFile reads rodood-db.yaml from dir. Returns ErrConfigNotFound if the
// file is absent.
func LoadFile(dir string) (*FileConfig, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}

// parseDuration parses a duration field, treating empty as zero. The field
// name is included in the error for operator-readable diagnostics.
func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, value, err)
	}
	return d, nil
}
