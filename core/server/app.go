package server

import (
	"fmt"
	"runtime/debug"

	"nemoris-api/core/loader"
	"nemoris-api/core/logger"
	"nemoris-api/core/metrics"
	"nemoris-api/core/middleware/jsonbody"
	"nemoris-api/core/middleware/rayid"
	"nemoris-api/core/middleware/requestlog"

	_ "nemoris-api/docs/swagger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// AppName is reported in the Server header and logs.
const AppName = "Nemoris API"

// Options collects everything the gateway is assembled from.
type Options struct {
	Config   Config
	Logger   *zap.Logger
	Features *loader.Manager
	// Metrics is required when Config.Metrics is set.
	Metrics *metrics.Metrics
}

// New builds the gateway: tracing and recovery first, then the body decoder and the
// CORS policy, then the optional operational routes, then the route groups in mount order.
func New(opts Options) (*fiber.App, error) {
	cfg := opts.Config
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               AppName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(l),
		BodyLimit:             cfg.bodyLimit(),
		ReadTimeout:           seconds(cfg.ReadTimeoutSeconds),
		WriteTimeout:          seconds(cfg.WriteTimeoutSeconds),
		IdleTimeout:           seconds(cfg.IdleTimeoutSeconds),
	})

	app.Hooks().OnListen(func(ld fiber.ListenData) error {
		l.Info("Server listening", zap.String("host", ld.Host), zap.String("port", ld.Port))
		return nil
	})

	// RayID must be first so every later log line can be correlated.
	app.Use(rayid.New())
	app.Use(requestlog.New(l))

	if cfg.Metrics {
		if opts.Metrics == nil {
			return nil, fmt.Errorf("metrics enabled without a metrics registry")
		}
		app.Use(opts.Metrics.Middleware())
	}

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.WithRayID(l, c).Error("Recovered from panic",
				zap.Any("panic", e),
				zap.ByteString("stack", debug.Stack()),
			)
		},
	}))

	app.Use(jsonbody.New())
	// An empty AllowHeaders echoes whatever the preflight asks for.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	if cfg.Metrics {
		app.Get("/metrics", opts.Metrics.Handler())
	}
	if cfg.Docs {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	if opts.Features != nil {
		if err := opts.Features.LoadAll(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}
