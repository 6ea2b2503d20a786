package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterHealthRoutes(app fiber.Router, synthetic bool) {
	app.Get("/livez", LivezHandler())
	app.Get("/readyz", ReadyzHandler(synthetic))
}

func LivezHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	}
}

// ReadyzHandler always reports ready. The backend being down never makes
// the panel unavailable, so readiness only exposes which data mode the
// process is serving from.
func ReadyzHandler(synthetic bool) fiber.Handler {
	mode := "live"
	if synthetic {
		mode = "synthetic"
	}

	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ready",
			"mode":   mode,
		})
	}
}
