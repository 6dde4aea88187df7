package health

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/redhat-appstudio/workshop-console/internal/version"
)

var startTime = time.Now()

// Handler reports the console's own liveness. It says nothing about the
// watched application; that is the health monitor's job.
type Handler struct {
	target string
}

// NewHandler creates a health handler for a console watching target.
func NewHandler(target string) *Handler {
	return &Handler{target: target}
}

// HealthHandler handles GET /api/v1/health.
func (h *Handler) HealthHandler(c *fiber.Ctx) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.GetShortVersion(),
		Build:     version.GetInfo(),
		Uptime:    time.Since(startTime).String(),
		Target:    h.target,
	}

	return c.JSON(response)
}
