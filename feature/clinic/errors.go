package clinic

import (
	"errors"
	"fmt"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a record collides with an existing one.
	ErrConflict = errors.New("already exists")
	// ErrInvalid is returned for requests failing validation.
	ErrInvalid = errors.New("invalid request")
)

// Respond maps domain and dependency errors to HTTP responses. Errors it does not
// recognise are returned unchanged for the gateway's error handler.
func Respond(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, bootstrap.ErrNotReady), errors.Is(err, bootstrap.ErrUnavailable):
		logger.WithRayID(l, c).Warn("Dependency unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "service temporarily unavailable",
		})
	default:
		return err
	}
}

// ParseID reads a positive numeric route parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalid, name)
	}
	return uint(id), nil
}
