package requestlog_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"nemoris-api/core/middleware/rayid"
	"nemoris-api/core/middleware/requestlog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	app := fiber.New()
	app.Use(rayid.New())
	app.Use(requestlog.New(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("booking: %w", fiber.NewError(fiber.StatusConflict, "slot taken"))
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/ok", 200},
		{"/teapot", 418},
		{"/boom", 500},
		{"/wrapped", 409},
		{"/missing", 404},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			before := logs.Len()
			_, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)

			entries := logs.All()[before:]
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "Request completed", entries[0].Message)
			assert.Equal(t, tt.path, fields["path"])
			assert.EqualValues(t, tt.status, fields["status"])
			assert.NotEmpty(t, fields["ray_id"])
		})
	}
}
