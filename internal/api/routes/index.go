package routes

import (
	"noteboard-backend/internal/libraries"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries what the route groups need to build their handlers.
type Deps struct {
	DB      *gorm.DB
	Log     *logger.Logger
	Metrics *metrics.Metrics
	Hub     *libraries.Hub
}

func Register(app *fiber.App, deps Deps) error {
	registerBoard(app, deps)
	registerNote(app, deps)
	return registerSystem(app, deps)
}
