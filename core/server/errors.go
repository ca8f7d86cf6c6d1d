package server

import (
	"errors"

	"nemoris-api/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorHandler is the gateway's last line of defence. Fiber errors keep their status
// and message; anything else is logged and answered with a generic 500.
func errorHandler(l *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.WithRayID(l, c).Error("Request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Error(err),
				)
			}
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		logger.WithRayID(l, c).Error("Unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
}
