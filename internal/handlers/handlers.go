package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redhat-appstudio/workshop-console/apis/console"
	"github.com/redhat-appstudio/workshop-console/apis/health"
	"github.com/redhat-appstudio/workshop-console/internal/version"
)

// SetupRoutes configures all HTTP routes for the workshop console.
func SetupRoutes(app *fiber.App, target string, consoleHandler *console.Handler) {
	// Register all APIs here - just add one line per API
	health.RegisterRoutes(app, health.NewHandler(target))
	console.RegisterRoutes(app, consoleHandler)

	// Root endpoint
	app.Get("/", RootHandler)
}

// RootHandler returns basic console information and where to look next.
func RootHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Cloud Workshop console",
		"version": version.GetShortVersion(),
		"docs":    "/api/v1/health",
		"regions": "/api/v1/regions",
	})
}
