package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/config"
	"nemoris-api/core/database"
	"nemoris-api/core/logger"
	"nemoris-api/core/reconcile"
	"nemoris-api/core/storage"
	"nemoris-api/feature/admin"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	mediaPrefix string
	purgeMedia  bool
	dryRunMedia bool
	yesConfirm  bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile stored media with database records",
}

// mediaReconcileCmd audits doctor and patient images against the media bucket.
var mediaReconcileCmd = &cobra.Command{
	Use:   "media",
	Short: "Report broken image references and orphaned objects (optionally repair)",
	Long: `Compares the image keys stored on doctors and patients with the objects in the
media bucket.

Examples:
  # Report only
  reconcile media

  # Delete orphaned objects and clear broken references (interactive confirmation)
  reconcile media --purge

  # Same, non-interactive
  reconcile media --purge --yes`,
	RunE: runMediaReconcile,
}

func init() {
	reconcileCmd.AddCommand(mediaReconcileCmd)

	mediaReconcileCmd.Flags().StringVar(&mediaPrefix, "prefix", "", "Only reconcile objects under this key prefix")
	mediaReconcileCmd.Flags().BoolVar(&purgeMedia, "purge", false, "Delete orphaned objects and clear broken references")
	mediaReconcileCmd.Flags().BoolVar(&dryRunMedia, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	mediaReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runMediaReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := admin.NewService(bootstrap.Static(db, client), cfg.Storage.Bucket,
		time.Duration(cfg.Storage.URLExpirySeconds)*time.Second, l)

	l.Info("Planning media reconciliation...", zap.String("prefix", mediaPrefix))
	plan, err := svc.AuditMedia(ctx, mediaPrefix, purgeMedia)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcileReport(l, plan)

	if !purgeMedia {
		l.Info("No actions requested. Use --purge to repair.")
		return nil
	}
	if dryRunMedia {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	res, err := svc.ReconcileMedia(ctx, admin.ReconcileMediaRequest{Prefix: mediaPrefix, Confirm: true})
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", res.Executed))
	return nil
}

// printReconcileReport logs the summary and a sample of the planned actions.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_keys", s.TotalKeys),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("orphaned", s.Orphaned),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions", zap.Int("purge_actions", s.PurgeActions))

	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
