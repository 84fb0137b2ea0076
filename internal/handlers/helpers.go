package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"noteboard-backend/internal/libraries"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// EventPublisher receives change events after successful writes
type EventPublisher interface {
	Publish(eventType libraries.EventType, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(libraries.EventType, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// parseID reads a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// parsePaging reads the skip and limit query parameters.
func parsePaging(c *fiber.Ctx) (int, int, error) {
	skip, err := queryInt(c, "skip", defaultSkip)
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	if c.Query(key) == "" {
		return fallback, nil
	}
	v := c.QueryInt(key, -1)
	if v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return v, nil
}

// Validator wraps go-playground validator and reports fields by their JSON names
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate returns nil or an error describing every failed field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// bindJSON parses and validates the request body into dst, writing the
// error response itself. ok is false when the handler should stop.
func bindJSON(c *fiber.Ctx, v *Validator, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := v.Validate(dst); err != nil {
		return false, errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return true, nil
}
