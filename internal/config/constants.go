package config

import "time"

// Default configuration values
const (
	// DefaultPort is the port of the console's own control surface
	DefaultPort = "3000"

	// DefaultEnvironment is the default deployment environment
	DefaultEnvironment = "development"

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"

	// DefaultConfigPath is where the YAML configuration is read from
	DefaultConfigPath = "configs/config.yaml"

	// DefaultTargetURL is the workshop application the console watches
	DefaultTargetURL = "http://localhost:8080"

	// DefaultHealthPath is the target's health-check path
	DefaultHealthPath = "/health"

	// DefaultHealthInterval is the delay between health polls
	DefaultHealthInterval = 30 * time.Second

	// DefaultClockInterval is the delay between clock updates
	DefaultClockInterval = time.Second

	// DefaultRequestsPerSec and DefaultBurst bound how often fetches can be triggered
	DefaultRequestsPerSec = 5.0
	DefaultBurst          = 10

	// DefaultRedisTTL is how long mirrored region contents live in Redis
	DefaultRedisTTL = 10 * time.Minute
)

// DefaultPresets mirrors the buttons of the workshop page.
var DefaultPresets = []string{"/health", "/api/info", "/api/env"}

// Valid environment values
const (
	ValidEnvironmentDevelopment = "development"
	ValidEnvironmentProduction  = "production"
)

// Valid log level values
const (
	ValidLogLevelDebug = "debug"
	ValidLogLevelInfo  = "info"
	ValidLogLevelWarn  = "warn"
	ValidLogLevelError = "error"
)
