package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Cassandra CassandraConfig `yaml:"cassandra"`
	Query     QueryConfig     `yaml:"query"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CassandraConfig contains cluster connection settings.
type CassandraConfig struct {
	// Hosts are the contact points of the cluster.
	Hosts []string `yaml:"hosts"`
	Port  int      `yaml:"port"`

	// KeyspacePrefix is prepended to every realm keyspace name.
	KeyspacePrefix string `yaml:"keyspace_prefix"`

	// Consistency is the default consistency level (e.g. "quorum").
	Consistency string `yaml:"consistency"`

	// ConnectTimeout and RequestTimeout are in seconds.
	ConnectTimeout int `yaml:"connect_timeout"`
	RequestTimeout int `yaml:"request_timeout"`
}

// QueryConfig contains planning limits.
type QueryConfig struct {
	// MaxValueLimit caps the rows of one time-series retrieval.
	MaxValueLimit int `yaml:"max_value_limit"`

	// DefaultPageSize is the device listing page size when the caller does
	// not specify one.
	DefaultPageSize int `yaml:"default_page_size"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads, overrides, and validates a configuration file.
//
// Environment variables follow the pattern ASTARTE_SECTION_KEY, for
// example: ASTARTE_CASSANDRA_HOSTS, ASTARTE_LOGGING_LEVEL.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Cassandra: CassandraConfig{
			Hosts:          []string{"localhost"},
			Port:           9042,
			KeyspacePrefix: "astarte_",
			Consistency:    "quorum",
			ConnectTimeout: 10,
			RequestTimeout: 10,
		},
		Query: QueryConfig{
			MaxValueLimit:   10000,
			DefaultPageSize: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: ASTARTE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ASTARTE_CASSANDRA_HOSTS"); v != "" {
		cfg.Cassandra.Hosts = strings.Split(v, ",")
	}
	if v := os.Getenv("ASTARTE_CASSANDRA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Cassandra.Port = port
		}
	}
	if v := os.Getenv("ASTARTE_CASSANDRA_KEYSPACE_PREFIX"); v != "" {
		cfg.Cassandra.KeyspacePrefix = v
	}
	if v := os.Getenv("ASTARTE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if len(c.Cassandra.Hosts) == 0 {
		errs = append(errs, "cassandra.hosts is required")
	}
	if c.Cassandra.Port < 1 || c.Cassandra.Port > 65535 {
		errs = append(errs, "cassandra.port must be 1-65535")
	}
	if c.Cassandra.ConnectTimeout <= 0 {
		errs = append(errs, "cassandra.connect_timeout must be positive")
	}
	if c.Cassandra.RequestTimeout <= 0 {
		errs = append(errs, "cassandra.request_timeout must be positive")
	}
	if c.Query.MaxValueLimit <= 0 {
		errs = append(errs, "query.max_value_limit must be positive")
	}
	if c.Query.DefaultPageSize <= 0 {
		errs = append(errs, "query.default_page_size must be positive")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, "logging.level must be debug, info, warn, or error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
