package api

import (
	"errors"
	"noteboard-backend/internal/config"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func NewServer(log *logger.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler(log),
		AppName:               config.AppName,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.Middleware(log))
	if m != nil {
		app.Use(m.Middleware())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	// Middleware to allow WebSocket upgrade
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	return app
}

// customErrorHandler renders errors that escaped the handlers, such as
// unknown routes, wrong methods and recovered panics.
func customErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}

func StartServer(app *fiber.App, port string, log *logger.Logger) error {
	log.WithField("port", port).Info("server starting")
	return app.Listen(":" + port)
}
