// Package config loads the clobd service's configuration from a YAML file
// with environment variable overrides, the way the wider trading system
// does (spf13/viper, mapstructure tags, a schema_version gate checked with
// Masterminds/semver).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
)

// SchemaVersionConstraint is the range of config schema versions this
// binary understands. Bump the lower bound when a field's meaning changes
// incompatibly; bump the upper bound when a new optional field is added.
const SchemaVersionConstraint = ">= 1.0.0, < 2.0.0"

// Config is the root configuration object, unmarshalled from YAML via
// mapstructure tags.
type Config struct {
	SchemaVersion string          `mapstructure:"schema_version"`
	Server        ServerConfig    `mapstructure:"server"`
	Matching      MatchingConfig  `mapstructure:"matching"`
	Auth          AuthConfig      `mapstructure:"auth"`
	Monitoring    MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig configures the HTTP service adapter.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitPerMin int           `mapstructure:"rate_limit_per_minute"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// InstrumentSeed describes one instrument to register at startup.
type InstrumentSeed struct {
	Name   string `mapstructure:"name"`
	Ticker string `mapstructure:"ticker"`
}

// MatchingConfig configures the matching engine itself.
type MatchingConfig struct {
	Instruments []InstrumentSeed `mapstructure:"instruments"`
}

// AuthConfig configures bearer-token authentication on the service adapter.
type AuthConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	JWTSigningKey string        `mapstructure:"jwt_signing_key"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
}

// MonitoringConfig controls the Prometheus metrics endpoint.
type MonitoringConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func defaults() *Config {
	return &Config{
		SchemaVersion: "1.0.0",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitPerMin: 600,
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		Monitoring: MonitoringConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configFile (YAML), applies CLOB_-prefixed environment variable
// overrides (CLOB_SERVER_PORT for server.port) to the keys the file sets,
// and validates the result's schema_version against
// SchemaVersionConstraint. configFile may be empty, in which case only the
// defaults apply; environment variables for keys absent from the file are
// not read.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := defaults()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := validateSchemaVersion(cfg.SchemaVersion); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateSchemaVersion(raw string) error {
	constraint, err := semver.NewConstraint(SchemaVersionConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema version constraint: %w", err)
	}

	version, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("parsing config schema_version %q: %w", raw, err)
	}

	if !constraint.Check(version) {
		return fmt.Errorf("config schema_version %s does not satisfy %s", raw, SchemaVersionConstraint)
	}
	return nil
}
