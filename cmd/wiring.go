package cmd

import (
	"context"
	"time"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/config"
	"nemoris-api/core/database"
	"nemoris-api/core/loader"
	"nemoris-api/core/metrics"
	"nemoris-api/core/server"
	"nemoris-api/core/storage"
	"nemoris-api/feature/admin"
	"nemoris-api/feature/clinic"
	"nemoris-api/feature/doctor"
	"nemoris-api/feature/status"
	"nemoris-api/feature/user"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// connectors binds the initializers to the loaded configuration.
func connectors(cfg *config.Config) bootstrap.Connectors {
	return bootstrap.Connectors{
		Database: func(ctx context.Context) (*gorm.DB, error) {
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return nil, err
			}
			if cfg.Database.AutoMigrate {
				if err := clinic.Migrate(db.WithContext(ctx)); err != nil {
					_ = database.Close(db)
					return nil, err
				}
			}
			return db, nil
		},
		Storage: func(ctx context.Context) (storage.Client, error) {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return nil, err
			}
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// features registers the route groups in mount order.
func features(cfg *config.Config, deps clinic.Handles, logg *zap.Logger) *loader.Manager {
	expiry := time.Duration(cfg.Storage.URLExpirySeconds) * time.Second

	mgr := loader.NewManager()
	mgr.Register(user.NewFeature(deps, logg))
	mgr.Register(admin.NewFeature(deps, cfg.Storage.Bucket, expiry, logg))
	mgr.Register(doctor.NewFeature(deps, logg))
	mgr.Register(status.NewFeature(nil))
	return mgr
}

// buildApp assembles the gateway for the given dependencies.
func buildApp(cfg *config.Config, deps clinic.Handles, logg *zap.Logger) (*fiber.App, error) {
	opts := server.Options{
		Config:   cfg.Server,
		Logger:   logg,
		Features: features(cfg, deps, logg),
	}
	if cfg.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts.Metrics = metrics.New(reg)
	}
	return server.New(opts)
}
