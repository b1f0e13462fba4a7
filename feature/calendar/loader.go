package calendar

import (
	"context"
	"time"

	"property-manager/core/loader"
	"property-manager/core/storage"
	"property-manager/feature/calendar/feed"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the calendar reconciliation engine into the application.
type Feature struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger

	scheduler *Scheduler
}

var _ loader.Feature = (*Feature)(nil)

// NewFeature creates the calendar feature. The storage client may be nil when
// snapshot archiving is disabled.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Feature {
	return &Feature{
		db:     db,
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "calendar"
}

// IsEnabled reports whether the engine can run. The engine is storage-backed;
// without a database there is nothing to reconcile against.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load builds the engine services, registers the HTTP routes and starts the
// scheduler when a cron expression is configured.
func (f *Feature) Load(app fiber.Router) error {
	store := NewGormStore(f.db)
	fetcher := feed.NewFetcher(time.Duration(f.cfg.FetchTimeoutSeconds) * time.Second)

	var archiver *Archiver
	if f.cfg.Archive && f.client != nil {
		archiver = NewArchiver(f.client, f.bucket)
		if err := archiver.EnsureBucket(context.Background()); err != nil {
			f.logger.Warn("Feed archive unavailable, continuing without it", zap.Error(err))
			archiver = nil
		}
	}

	syncService := NewSyncService(store, fetcher, archiver, f.logger)
	batchService := NewBatchService(store, syncService, f.cfg.Workers, f.logger)

	handler := NewHandler(store, syncService, batchService, f.logger)
	handler.RegisterRoutes(app)

	if f.cfg.Schedule != "" {
		f.scheduler = NewScheduler(batchService, f.cfg.Schedule, f.logger)
		if err := f.scheduler.Start(); err != nil {
			return err
		}
	}

	return nil
}

// Stop halts the scheduler if one was started.
func (f *Feature) Stop() {
	if f.scheduler != nil {
		f.scheduler.Stop()
	}
}
