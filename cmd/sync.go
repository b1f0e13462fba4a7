package cmd

import (
	"context"
	"log"

	"property-manager/core/config"
	"property-manager/core/database"
	"property-manager/core/logger"
	"property-manager/core/storage"
	"property-manager/feature/calendar"
	"property-manager/feature/calendar/feed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncPropertyID uint

// syncCmd runs one reconciliation pass from the command line and exits.
// Useful for cron-driven deployments that do not keep the server running.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one calendar sync pass",
	Long: `Fetches and reconciles channel feeds once, then exits.

Without flags every configured property is synced through the worker pool.
With --property only that property is synced.

Examples:
  # Sync the whole fleet
  property-manager sync

  # Sync one property
  property-manager sync --property 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		store := calendar.NewGormStore(db)
		fetcher := feed.NewFetcher(feed.DefaultTimeout)

		var archiver *calendar.Archiver
		if cfg.Sync.Archive {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return err
			}
			archiver = calendar.NewArchiver(client, cfg.Storage.Bucket)
			if err := archiver.EnsureBucket(cmd.Context()); err != nil {
				logg.Warn("Feed archive unavailable, continuing without it", zap.Error(err))
				archiver = nil
			}
		}

		syncService := calendar.NewSyncService(store, fetcher, archiver, logg)
		ctx := context.Background()

		if syncPropertyID != 0 {
			result, err := syncService.SyncProperty(ctx, syncPropertyID)
			if err != nil {
				return err
			}
			logg.Info("Sync finished",
				zap.Uint("property_id", result.PropertyID),
				zap.Bool("success", result.Success),
				zap.Int("channels", len(result.Outcomes)),
			)
			return nil
		}

		batch := calendar.NewBatchService(store, syncService, cfg.Sync.Workers, logg)
		result, err := batch.SyncAll(ctx)
		if err != nil {
			return err
		}
		logg.Info("Batch sync finished",
			zap.Int("attempted", result.Attempted),
			zap.Int("succeeded", result.Succeeded),
			zap.Int("failed", result.Failed),
		)
		return nil
	},
}

func init() {
	syncCmd.Flags().UintVar(&syncPropertyID, "property", 0, "sync only this property ID")
	RootCmd.AddCommand(syncCmd)
}
