package health

import (
	"time"

	"github.com/redhat-appstudio/workshop-console/internal/version"
)

// HealthResponse represents the console's own health check response.
type HealthResponse struct {
	// Status indicates the current console status (e.g., "healthy")
	Status string `json:"status"`

	// Timestamp is when the health check was performed
	Timestamp time.Time `json:"timestamp"`

	// Version is the console version information
	Version string `json:"version"`

	// Build is the version, commit, build time and Go version
	Build version.Info `json:"build"`

	// Uptime is the console uptime duration
	Uptime string `json:"uptime"`

	// Target is the base URL of the watched application
	Target string `json:"target"`
}
