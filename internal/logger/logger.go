package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Logger wraps a logrus entry carrying the service name
type Logger struct {
	*logrus.Entry
}

// NewLogger creates a JSON logger writing to stdout.
func NewLogger(serviceName, level string) *Logger {
	return New(serviceName, level, os.Stdout)
}

func New(serviceName, level string, out io.Writer) *Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(out)
	log.SetLevel(parseLevel(level))

	return &Logger{Entry: log.WithField("service", serviceName)}
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// WithRequestID adds request ID to logger
func (l *Logger) WithRequestID(requestID string) *logrus.Entry {
	return l.WithField("request_id", requestID)
}

// Gorm returns a gorm logger that writes SQL statements through this logger.
// level is one of silent, error, warn or info.
func (l *Logger) Gorm(level string) gormlogger.Interface {
	return gormlogger.New(l, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseGormLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Middleware logs every request once it has been handled.
func Middleware(log *Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		entry := log.WithRequestID(c.GetRespHeader(fiber.HeaderXRequestID)).WithFields(logrus.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		switch {
		case status >= fiber.StatusInternalServerError:
			if err != nil {
				entry = entry.WithError(err)
			}
			entry.Error("request failed")
		default:
			entry.Info("request completed")
		}

		return err
	}
}
