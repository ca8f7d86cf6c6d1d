package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/config"
	"nemoris-api/core/database"
	"nemoris-api/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkTimeout time.Duration

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the initializers and report their outcome",
	Long:  `Connects to the database and the media store once, waits for both, and exits non-zero if either failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		deps := bootstrap.Start(ctx, connectors(cfg), logg)
		if err := deps.Wait(ctx); err != nil {
			return fmt.Errorf("initializers did not finish: %w", err)
		}

		db, dbErr := deps.DB()
		_, storeErr := deps.Storage()
		if dbErr == nil {
			defer database.Close(db)
		}

		report(cmd, "database", dbErr)
		report(cmd, "storage", storeErr)

		if deps.State() != bootstrap.StateReady {
			return errors.Join(dbErr, storeErr)
		}
		logg.Info("All dependencies ready", zap.Stringer("state", deps.State()))
		return nil
	},
}

func report(cmd *cobra.Command, name string, err error) {
	if err != nil {
		cmd.Printf("%-10s FAIL  %v\n", name, err)
		return
	}
	cmd.Printf("%-10s OK\n", name)
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", time.Minute, "maximum time to wait for the initializers")
	RootCmd.AddCommand(checkCmd)
}
