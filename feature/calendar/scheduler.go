package calendar

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers periodic batch syncs from a cron expression.
type Scheduler struct {
	cron     *cron.Cron
	batch    *BatchService
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler for the given cron expression
// (e.g. "@every 30m" or "0 */2 * * *").
func NewScheduler(batch *BatchService, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		batch:    batch,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the batch job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		// A batch runs to completion over its enumerated property set; there
		// is no mid-run cancellation.
		if _, err := s.batch.SyncAll(context.Background()); err != nil {
			s.logger.Error("Scheduled batch sync failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Sync scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
