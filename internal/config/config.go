package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Flags exposes the command-line overrides. Empty values mean "not set".
type Flags interface {
	GetConfigPath() string
	GetPort() string
	GetEnvironment() string
	GetLogLevel() string
	GetTarget() string
}

// LoadWithFlags builds the console configuration. flgs may be nil, in which
// case DefaultConfigPath and the environment are used.
//
// Configuration precedence (highest to lowest):
// 1. Command-line flags (server settings and target URL)
// 2. Environment variables
// 3. YAML configuration file
// 4. Default values
func LoadWithFlags(flgs Flags) *Config {
	path := DefaultConfigPath
	if flgs != nil && flgs.GetConfigPath() != "" {
		path = flgs.GetConfigPath()
	}
	y := loadFromYAML(path)

	port := firstNonEmpty(flagValue(flgs, Flags.GetPort), getEnv("PORT", y.Server.Port), DefaultPort)
	environment := firstNonEmpty(flagValue(flgs, Flags.GetEnvironment), getEnv("ENVIRONMENT", y.Server.Environment), DefaultEnvironment)
	logLevel := firstNonEmpty(flagValue(flgs, Flags.GetLogLevel), getEnv("LOG_LEVEL", y.Server.LogLevel), DefaultLogLevel)
	baseURL := firstNonEmpty(flagValue(flgs, Flags.GetTarget), getEnv("TARGET_URL", y.Target.BaseURL), DefaultTargetURL)

	presets := y.Tester.Presets
	if len(presets) == 0 {
		presets = append([]string(nil), DefaultPresets...)
	}

	rps := y.Tester.RequestsPerSec
	if rps <= 0 {
		rps = DefaultRequestsPerSec
	}
	burst := y.Tester.Burst
	if burst <= 0 {
		burst = DefaultBurst
	}

	return &Config{
		Port:        port,
		Environment: environment,
		LogLevel:    logLevel,
		LogOutput:   getEnv("LOG_OUTPUT", y.Server.LogOutput),
		Target: TargetConfig{
			BaseURL: strings.TrimRight(baseURL, "/"),
			Token:   getEnv("TARGET_TOKEN", y.Target.Token),
			Timeout: parseDuration(getEnv("TARGET_TIMEOUT", y.Target.Timeout), 0),
		},
		Health: HealthConfig{
			Enabled:  boolOr(y.Health.Enabled, true),
			Path:     firstNonEmpty(getEnv("HEALTH_PATH", y.Health.Path), DefaultHealthPath),
			Interval: parseDuration(getEnv("HEALTH_INTERVAL", y.Health.Interval), DefaultHealthInterval),
		},
		Clock: ClockConfig{
			Enabled:  boolOr(y.Clock.Enabled, true),
			Interval: parseDuration(getEnv("CLOCK_INTERVAL", y.Clock.Interval), DefaultClockInterval),
		},
		Tester: TesterConfig{
			DiscardStale:   boolOr(y.Tester.DiscardStale, true),
			Presets:        presets,
			RequestsPerSec: rps,
			Burst:          burst,
		},
		Storage: StorageConfig{
			Redis: redisFromEnv(y.Storage.Redis),
		},
	}
}

// redisFromEnv lets REDIS_HOST, REDIS_PORT and REDIS_PASSWORD override the YAML values.
func redisFromEnv(redisConfig RedisYAMLConfig) RedisYAMLConfig {
	redisHost := getEnv("REDIS_HOST", "")
	redisPort := getEnv("REDIS_PORT", "")

	if redisHost != "" && redisPort != "" {
		redisConfig.Address = redisHost + ":" + redisPort
	} else if redisHost != "" {
		redisConfig.Address = redisHost + ":6379"
	}
	redisConfig.Password = getEnv("REDIS_PASSWORD", redisConfig.Password)
	if redisConfig.KeyPrefix == "" {
		redisConfig.KeyPrefix = "workshop-console"
	}
	return redisConfig
}

// RedisTTL returns the parsed TTL for mirrored regions.
func (r RedisYAMLConfig) RedisTTL() time.Duration {
	return parseDuration(r.TTL, DefaultRedisTTL)
}

func loadFromYAML(path string) *YAMLConfig {
	cfg := &YAMLConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &YAMLConfig{}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func flagValue(flgs Flags, get func(Flags) string) string {
	if flgs == nil {
		return ""
	}
	return get(flgs)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// parseDuration accepts Go durations ("30s", "1m") or a plain number of seconds.
func parseDuration(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
