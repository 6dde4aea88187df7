package health

import "fmt"

// Status is the body of the watched application's health endpoint.
type Status struct {
	// Status is the liveness verdict (e.g., "healthy", "ok")
	Status string `json:"status"`

	// Version of the running application (e.g., "1.0.0")
	Version string `json:"version"`

	// Environment the application runs in (e.g., "dev", "prod")
	Environment string `json:"environment"`
}

// Summary is the one-line form logged on every successful poll.
func (s *Status) Summary() string {
	return fmt.Sprintf("Health: %s | v%s | %s", s.Status, s.Version, s.Environment)
}
