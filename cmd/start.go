package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/config"
	"nemoris-api/core/database"
	"nemoris-api/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Nemoris API
// @version 1.0
// @description HTTP gateway of the Nemoris healthcare booking platform.
// @host localhost:4000
// @BasePath /

const shutdownTimeout = 10 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gateway",
	Long: `Starts the HTTP gateway. The database and media store are initialized in the
background; requests are accepted immediately.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Fire and forget: failures are logged and surface as 503s on the route groups.
		deps := bootstrap.Start(ctx, connectors(cfg), logg)

		app, err := buildApp(cfg, deps, logg)
		if err != nil {
			logg.Fatal("Failed to build gateway", zap.Error(err))
		}

		go func() {
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()

		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		if db, err := deps.DB(); err == nil {
			_ = database.Close(db)
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
