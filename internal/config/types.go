package config

import "time"

// Config is the resolved console configuration after YAML, environment and
// flag overrides have been applied.
type Config struct {
	// Control surface port (e.g., "3000")
	Port string

	// Application environment ("development" or "production")
	Environment string

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string

	// Log destination: "stdout", "stderr" or a file path
	LogOutput string

	// Workshop application being watched
	Target TargetConfig

	Health HealthConfig

	Clock ClockConfig

	Tester TesterConfig

	Storage StorageConfig
}

// TargetConfig describes how to reach the watched application.
type TargetConfig struct {
	// Base URL every relative path is resolved against (e.g., "http://localhost:8080")
	BaseURL string

	// Optional bearer token sent with every request
	Token string

	// Per-request timeout; zero means requests never time out
	Timeout time.Duration
}

// HealthConfig configures the health monitor.
type HealthConfig struct {
	Enabled  bool
	Path     string
	Interval time.Duration
}

// ClockConfig configures the live clock.
type ClockConfig struct {
	Enabled  bool
	Interval time.Duration
}

// TesterConfig configures the endpoint tester and its trigger endpoint.
type TesterConfig struct {
	// Drop responses that arrive after a newer request was issued
	DiscardStale bool

	// Paths offered as one-click fetches
	Presets []string

	// Trigger rate limit
	RequestsPerSec float64
	Burst          int
}

// StorageConfig holds the optional Redis mirror settings.
type StorageConfig struct {
	Redis RedisYAMLConfig `yaml:"redis"`
}

// RedisYAMLConfig represents Redis configuration from YAML files.
type RedisYAMLConfig struct {
	// Whether mirroring display regions to Redis is enabled
	Enabled bool `yaml:"enabled"`

	// Redis server address (e.g., "localhost:6379")
	Address string `yaml:"address"`

	// Redis password for authentication
	Password string `yaml:"password"`

	// Redis database number (0-15)
	Database int `yaml:"database"`

	// Key prefix for all Redis keys (e.g., "workshop-console")
	KeyPrefix string `yaml:"key_prefix"`

	// Expiry of mirrored region contents (e.g., "10m")
	TTL string `yaml:"ttl"`
}

// ServerYAMLConfig is the server section of config.yaml.
type ServerYAMLConfig struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	LogOutput   string `yaml:"log_output"`
}

// TargetYAMLConfig is the target section of config.yaml.
type TargetYAMLConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Timeout string `yaml:"timeout"`
}

// HealthYAMLConfig is the health section of config.yaml. Enabled is a
// pointer so an omitted key keeps the default of true.
type HealthYAMLConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Path     string `yaml:"path"`
	Interval string `yaml:"interval"`
}

// ClockYAMLConfig is the clock section of config.yaml.
type ClockYAMLConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Interval string `yaml:"interval"`
}

// TesterYAMLConfig is the tester section of config.yaml.
type TesterYAMLConfig struct {
	DiscardStale   *bool    `yaml:"discard_stale"`
	Presets        []string `yaml:"presets"`
	RequestsPerSec float64  `yaml:"requests_per_sec"`
	Burst          int      `yaml:"burst"`
}

// YAMLConfig is the root of configs/config.yaml.
type YAMLConfig struct {
	Server  ServerYAMLConfig `yaml:"server"`
	Target  TargetYAMLConfig `yaml:"target"`
	Health  HealthYAMLConfig `yaml:"health"`
	Clock   ClockYAMLConfig  `yaml:"clock"`
	Tester  TesterYAMLConfig `yaml:"tester"`
	Storage StorageConfig    `yaml:"storage"`
}
