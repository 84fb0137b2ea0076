package routes

import (
	"fmt"
	"noteboard-backend/internal/handlers"
	"noteboard-backend/internal/libraries"

	"github.com/gofiber/fiber/v2"
)

// publisher returns the hub as the handlers' event sink, or nil when the
// change feed is disabled.
func publisher(deps Deps) handlers.EventPublisher {
	if deps.Hub == nil {
		return nil
	}
	return deps.Hub
}

// registerSystem adds health, metrics and the websocket change feed.
func registerSystem(r fiber.Router, deps Deps) error {
	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	r.Get("/health", handlers.NewHealthHandler(sqlDB).Health)

	if deps.Metrics != nil {
		r.Get("/metrics", deps.Metrics.Handler())
	}

	if deps.Hub != nil {
		r.Get("/ws", libraries.WebSocketHandler(deps.Hub))
	}
	return nil
}
