package config

import (
	"fmt"
	"time"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// Overrides carries explicit CLI values. Zero values mean "not provided".
type Overrides struct {
	ConnString                string
	SSLMode                   string
	AuthMethod                string
	AWSRegion                 string
	GoogleInstance            string
	MaxConns                  int32
	DisablePreparedStatements bool

	MaxAttempts    int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
}

// Resolve merges configuration sources into the pool and probe config value
// objects. Precedence: CLI overrides > environment > project file >
// defaults. The result is validated; a missing connection string is
// reported here, before any network I/O happens.
func Resolve(ov Overrides, env *EnvVars, file *FileConfig) (rodooddb.PoolConfig, rodooddb.ProbeConfig, error) {
	if env == nil {
		env = &EnvVars{}
	}
	if file == nil {
		file = &FileConfig{}
	}

	pool := rodooddb.PoolConfig{
		ConnString:                firstNonEmpty(ov.ConnString, env.ConnString(), file.Connection.URL),
		SSLMode:                   firstNonEmpty(ov.SSLMode, env.PGSSLMode, file.Connection.SSLMode),
		AWSRegion:                 firstNonEmpty(ov.AWSRegion, env.AWSRegion, file.Connection.AWSRegion),
		GoogleInstance:            firstNonEmpty(ov.GoogleInstance, file.Connection.GoogleInstance),
		AzureTenantID:             firstNonEmpty(env.AzureTenantID, file.Connection.AzureTenantID),
		AzureClientID:             firstNonEmpty(env.AzureClientID, file.Connection.AzureClientID),
		AzureClientSecret:         env.AzureClientSecret,
		AppName:                   file.Pool.AppName,
		MinConns:                  file.Pool.MinConns,
		DisablePreparedStatements: ov.DisablePreparedStatements || file.Pool.DisablePreparedStatements,
	}

	if ov.MaxConns != 0 {
		pool.MaxConns = ov.MaxConns
	} else {
		pool.MaxConns = file.Pool.MaxConns
	}

	var err error
	if pool.MaxConnIdleTime, err = parseDuration("pool.max_conn_idle_time", file.Pool.MaxConnIdleTime); err != nil {
		return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
	}
	if pool.ConnectTimeout, err = parseDuration("pool.connect_timeout", file.Pool.ConnectTimeout); err != nil {
		return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
	}

	method, err := resolveAuthMethod(firstNonEmpty(ov.AuthMethod, file.Connection.AuthMethod), env)
	if err != nil {
		return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
	}
	pool.AuthMethod = method

	probe := rodooddb.ProbeConfig{
		MaxAttempts:    ov.MaxAttempts,
		RetryDelay:     ov.RetryDelay,
		AttemptTimeout: ov.AttemptTimeout,
	}
	if probe.MaxAttempts == 0 {
		probe.MaxAttempts = file.Probe.MaxAttempts
	}
	if probe.RetryDelay == 0 {
		if probe.RetryDelay, err = parseDuration("probe.retry_delay", file.Probe.RetryDelay); err != nil {
			return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
		}
	}
	if probe.AttemptTimeout == 0 {
		if probe.AttemptTimeout, err = parseDuration("probe.attempt_timeout", file.Probe.AttemptTimeout); err != nil {
			return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
		}
	}

	if err := pool.Validate(); err != nil {
		return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
	}
	if err := probe.Validate(); err != nil {
		return rodooddb.PoolConfig{}, rodooddb.ProbeConfig{}, err
	}

	return pool, probe, nil
}

// resolveAuthMethod maps the configured auth method name, falling back to
// Azure when Entra ID credentials are present in the environment and no
// method was named.
func resolveAuthMethod(name string, env *EnvVars) (rodooddb.AuthMethod, error) {
	switch name {
	case "", "standard", "password":
		if name == "" && env.HasAzureCredentials() {
			return rodooddb.AuthMethodAzureEntraID, nil
		}
		return rodooddb.AuthMethodStandard, nil
	case "aws-iam":
		return rodooddb.AuthMethodAWSIAM, nil
	case "google-iam":
		return rodooddb.AuthMethodGoogleIAM, nil
	case "azure":
		return rodooddb.AuthMethodAzureEntraID, nil
	default:
		return 0, fmt.Errorf("auth method %q (want standard, aws-iam, google-iam, or azure): %w",
			name, rodooddb.ErrUnsupportedAuthMethod)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
