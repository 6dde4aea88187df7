package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/redhat-appstudio/workshop-console/internal/config"
	"github.com/redhat-appstudio/workshop-console/internal/version"
)

// Valid values for validation
const (
	ValidEnvironmentDevelopment = config.ValidEnvironmentDevelopment
	ValidEnvironmentProduction  = config.ValidEnvironmentProduction

	ValidLogLevelDebug = config.ValidLogLevelDebug
	ValidLogLevelInfo  = config.ValidLogLevelInfo
	ValidLogLevelWarn  = config.ValidLogLevelWarn
	ValidLogLevelError = config.ValidLogLevelError
)

// Help and version text
const (
	AppName        = "Cloud Workshop console"
	AppDescription = "Endpoint tester, live clock and health monitor for the workshop application"
)

// ConsoleFlags holds all command-line flags. Empty values mean "not set";
// the config package then falls back to the environment, the YAML file and
// the defaults, in that order.
type ConsoleFlags struct {
	// Path to the YAML configuration file
	ConfigPath string
	// Control surface port number
	Port string
	// Deployment environment (development/production)
	Environment string
	// Logging verbosity level (debug/info/warn/error)
	LogLevel string
	// Base URL of the watched workshop application
	Target string

	// Fetch this path once, print the result and exit
	Fetch string

	// Show help information and exit
	Help bool
	// Show version information and exit
	Version bool
}

// parseFlags parses args (without the program name) into ConsoleFlags.
func parseFlags(args []string) (*ConsoleFlags, error) {
	f := &ConsoleFlags{}
	fs := flag.NewFlagSet("workshop-console", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.ConfigPath, "config", "",
		fmt.Sprintf("Path to the YAML configuration file (default: %s)", config.DefaultConfigPath))
	fs.StringVar(&f.Port, "port", "",
		fmt.Sprintf("Control surface port number (default: %s)", config.DefaultPort))
	fs.StringVar(&f.Environment, "env", "",
		fmt.Sprintf("Deployment environment: %s, %s (default: %s)",
			ValidEnvironmentDevelopment, ValidEnvironmentProduction, config.DefaultEnvironment))
	fs.StringVar(&f.LogLevel, "log-level", "",
		fmt.Sprintf("Log level: %s, %s, %s, %s (default: %s)",
			ValidLogLevelDebug, ValidLogLevelInfo, ValidLogLevelWarn, ValidLogLevelError, config.DefaultLogLevel))
	fs.StringVar(&f.Target, "target", "",
		fmt.Sprintf("Base URL of the workshop application (default: %s)", config.DefaultTargetURL))
	fs.StringVar(&f.Fetch, "fetch", "", "Fetch one path, print the result and exit")

	fs.BoolVar(&f.Help, "help", false, "Show help information and exit")
	fs.BoolVar(&f.Help, "h", false, "Show help information and exit (short form)")
	fs.BoolVar(&f.Version, "version", false, "Show version information and exit")
	fs.BoolVar(&f.Version, "v", false, "Show version information and exit (short form)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// showHelp prints usage, flags and examples.
func (f *ConsoleFlags) showHelp(w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n", AppName, AppDescription)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  workshop-console [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FLAGS:")
	fmt.Fprintln(w, "  Console Configuration:")
	fmt.Fprintln(w, "    -config string")
	fmt.Fprintf(w, "          YAML configuration file (default: %s)\n", config.DefaultConfigPath)
	fmt.Fprintln(w, "    -port string")
	fmt.Fprintf(w, "          Control surface port (default: %s)\n", config.DefaultPort)
	fmt.Fprintln(w, "    -env string")
	fmt.Fprintln(w, "          Environment: development, production (default: development)")
	fmt.Fprintln(w, "    -log-level string")
	fmt.Fprintln(w, "          Log level: debug, info, warn, error (default: info)")
	fmt.Fprintln(w, "    -target string")
	fmt.Fprintf(w, "          Workshop application base URL (default: %s)\n", config.DefaultTargetURL)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Endpoint Tester:")
	fmt.Fprintln(w, "    -fetch string")
	fmt.Fprintln(w, "          Fetch one path, print the JSON or the error and exit (exit code 1 on error)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  General:")
	fmt.Fprintln(w, "    -help, -h")
	fmt.Fprintln(w, "          Show this help information")
	fmt.Fprintln(w, "    -version, -v")
	fmt.Fprintln(w, "          Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  # Watch the local workshop application")
	fmt.Fprintln(w, "  workshop-console")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  # Watch a deployed instance")
	fmt.Fprintln(w, "  workshop-console -target https://workshop.example.com -env production")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  # Test one endpoint and exit")
	fmt.Fprintln(w, "  workshop-console -fetch /api/info")
}

// showVersion prints version and build information.
func (f *ConsoleFlags) showVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", AppName, version.GetVersion())
	fmt.Fprintf(w, "Build info: %s\n", version.GetBuildInfo())
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
}

// validate checks the values of flags that were set.
func (f *ConsoleFlags) validate() error {
	if f.Environment != "" {
		validEnvs := []string{ValidEnvironmentDevelopment, ValidEnvironmentProduction}
		if !contains(validEnvs, f.Environment) {
			return fmt.Errorf("invalid environment: %s (must be one of: %s)", f.Environment, strings.Join(validEnvs, ", "))
		}
	}

	if f.LogLevel != "" {
		validLevels := []string{ValidLogLevelDebug, ValidLogLevelInfo, ValidLogLevelWarn, ValidLogLevelError}
		if !contains(validLevels, f.LogLevel) {
			return fmt.Errorf("invalid log level: %s (must be one of: %s)", f.LogLevel, strings.Join(validLevels, ", "))
		}
	}

	if f.Target != "" && !strings.HasPrefix(f.Target, "http://") && !strings.HasPrefix(f.Target, "https://") {
		return fmt.Errorf("invalid target: %s (must start with http:// or https://)", f.Target)
	}

	if f.Fetch != "" && !strings.HasPrefix(f.Fetch, "/") {
		return fmt.Errorf("invalid fetch path: %s (must start with '/')", f.Fetch)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// Interface methods for config package

// GetConfigPath returns the YAML configuration path.
func (f *ConsoleFlags) GetConfigPath() string {
	return f.ConfigPath
}

// GetPort returns the configured control surface port.
func (f *ConsoleFlags) GetPort() string {
	return f.Port
}

// GetEnvironment returns the configured deployment environment.
func (f *ConsoleFlags) GetEnvironment() string {
	return f.Environment
}

// GetLogLevel returns the configured logging verbosity level.
func (f *ConsoleFlags) GetLogLevel() string {
	return f.LogLevel
}

// GetTarget returns the configured workshop application base URL.
func (f *ConsoleFlags) GetTarget() string {
	return f.Target
}
