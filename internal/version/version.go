package version

import (
	"fmt"
	"runtime"
)

// Version information that can be set at build time
var (
	// These can be set via ldflags during build:
	// go build -ldflags "-X github.com/redhat-appstudio/workshop-console/internal/version.BuildVersion=v1.2.3"
	BuildVersion = "v1.0.0"
	BuildTime    = "unknown"
	BuildCommit  = "unknown"
)

// Info is the build metadata reported under "build" by GET /api/v1/health.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Go        string `json:"go"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return BuildVersion
}

// GetInfo returns the build metadata.
func GetInfo() Info {
	return Info{
		Version:   BuildVersion,
		Commit:    BuildCommit,
		BuildTime: BuildTime,
		Go:        runtime.Version(),
	}
}

// GetBuildInfo returns version, build time, commit and Go version on one line.
func GetBuildInfo() string {
	return fmt.Sprintf("%s (built: %s, commit: %s, go: %s)",
		BuildVersion, BuildTime, BuildCommit, runtime.Version())
}

// GetShortVersion returns the version number without the "v" prefix.
func GetShortVersion() string {
	if len(BuildVersion) > 0 && BuildVersion[0] == 'v' {
		return BuildVersion[1:]
	}
	return BuildVersion
}
