package console

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the display and endpoint tester routes.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	v1 := app.Group("/api/v1")

	if handler == nil {
		unavailable := func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusServiceUnavailable, "console not available")
		}
		v1.Get("/regions", unavailable)
		v1.Post("/fetch", unavailable)
		return
	}

	v1.Get("/regions", handler.ListRegions)
	v1.Get("/regions/:id", handler.GetRegion)
	v1.Post("/fetch", handler.Fetch)
	v1.Get("/presets", handler.ListPresets)
}
