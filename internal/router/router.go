package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/takehome-go-api/internal/config"
	"github.com/noah-isme/takehome-go-api/internal/handler"
	"github.com/noah-isme/takehome-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler *handler.AssignmentHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments")
		deps.AssignmentHandler.Register(assignments)
	}
}
