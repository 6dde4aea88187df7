package logger

import (
	"github.com/redhat-appstudio/workshop-console/internal/config"
)

// FromConfig derives the logger settings from the console configuration.
// Production runs log JSON, everything else logs colored console lines.
func FromConfig(cfg *config.Config) *Config {
	loggerConfig := DefaultConfig()

	if cfg.LogLevel != "" {
		loggerConfig.Level = LogLevel(cfg.LogLevel)
	}

	if cfg.Environment == config.ValidEnvironmentProduction {
		loggerConfig.Format = FormatJSON
	} else {
		loggerConfig.Format = FormatConsole
	}

	if cfg.LogOutput != "" {
		loggerConfig.OutputPath = cfg.LogOutput
	}

	return loggerConfig
}

func InitFromConfig(cfg *config.Config) error {
	return Init(FromConfig(cfg))
}
