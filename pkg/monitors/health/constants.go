package health

import "time"

const (
	// TaskID identifies the health monitor's scheduled task
	TaskID = "health"

	// DefaultPath is the health-check path of the watched application
	DefaultPath = "/health"

	// DefaultCheckInterval is the default delay between health polls
	DefaultCheckInterval = 30 * time.Second
)

// Error messages
const (
	ErrMissingClient = "health client is not configured"
	ErrHealthFetch   = "failed to fetch health status"
)
