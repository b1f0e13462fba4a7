package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"property-manager/feature/calendar/feed"
	"property-manager/feature/calendar/models"
	"property-manager/feature/calendar/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SyncService coordinates fetch, parse, reconcile and persist for one
// property's configured channels.
//
// Channel pipelines run concurrently; the persistence step is serialized per
// property so overlapping triggers cannot race on writes. Concurrent triggers
// for the same property are additionally coalesced through singleflight, so an
// on-demand sync overlapping a scheduled batch does the work once.
type SyncService struct {
	store    Store
	fetcher  *feed.Fetcher
	archiver *Archiver
	logger   *zap.Logger

	group singleflight.Group

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewSyncService creates a sync coordinator. The archiver may be nil when
// snapshot archiving is disabled.
func NewSyncService(store Store, fetcher *feed.Fetcher, archiver *Archiver, logger *zap.Logger) *SyncService {
	return &SyncService{
		store:    store,
		fetcher:  fetcher,
		archiver: archiver,
		logger:   logger,
		locks:    map[uint]*sync.Mutex{},
	}
}

// SyncProperty runs a full sync for one property and returns the aggregated
// result. The returned error is reserved for store-level failures that prevent
// the run entirely; per-channel failures are reported inside the result.
func (s *SyncService) SyncProperty(ctx context.Context, propertyID uint) (*models.PropertySyncResult, error) {
	v, err, _ := s.group.Do(fmt.Sprintf("property-%d", propertyID), func() (any, error) {
		return s.syncProperty(ctx, propertyID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.PropertySyncResult), nil
}

// channelRun carries one channel's pipeline output to the persistence step.
type channelRun struct {
	outcome models.SyncOutcome
	diff    reconcile.Diff
}

func (s *SyncService) syncProperty(ctx context.Context, propertyID uint) (*models.PropertySyncResult, error) {
	configs, err := s.store.FeedConfigs(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Fetch, parse and reconcile every configured channel concurrently. The
	// pipelines are independent until persistence.
	runs := make(chan channelRun, len(configs))
	var wg sync.WaitGroup
	for _, cfg := range configs {
		wg.Add(1)
		go func(cfg models.ChannelFeedConfig) {
			defer wg.Done()
			runs <- s.runChannel(ctx, propertyID, cfg, now)
		}(cfg)
	}
	wg.Wait()
	close(runs)

	result := &models.PropertySyncResult{
		PropertyID: propertyID,
		Success:    true,
		SyncedAt:   now,
	}

	// Persistence is serialized per property to avoid lost updates when two
	// sync triggers overlap.
	lock := s.propertyLock(propertyID)
	lock.Lock()
	for run := range runs {
		outcome := run.outcome
		if outcome.Success {
			outcome = s.applyDiff(ctx, propertyID, outcome, run.diff)
		}
		result.Outcomes = append(result.Outcomes, outcome)
		if !outcome.Success {
			result.Success = false
		}
	}
	lock.Unlock()

	sort.Slice(result.Outcomes, func(i, j int) bool {
		return result.Outcomes[i].Channel < result.Outcomes[j].Channel
	})

	// The timestamp is written even on partial failure; callers inspect the
	// per-channel outcomes for detail.
	if err := s.store.UpdateLastSyncedAt(ctx, propertyID, now); err != nil {
		s.logger.Error("Failed to update last_synced_at",
			zap.Uint("property_id", propertyID), zap.Error(err))
	}

	s.logger.Info("Property sync finished",
		zap.Uint("property_id", propertyID),
		zap.Int("channels", len(result.Outcomes)),
		zap.Bool("success", result.Success),
	)

	return result, nil
}

// runChannel executes the read-only half of one channel's pipeline:
// fetch, archive, parse, load stored state, reconcile.
func (s *SyncService) runChannel(ctx context.Context, propertyID uint, cfg models.ChannelFeedConfig, now time.Time) channelRun {
	outcome := models.SyncOutcome{Channel: cfg.Channel, Success: true}

	raw, err := s.fetcher.Fetch(ctx, cfg.FeedURL)
	if err != nil {
		s.logger.Warn("Feed fetch failed",
			zap.Uint("property_id", propertyID),
			zap.String("channel", string(cfg.Channel)),
			zap.Error(err),
		)
		outcome.Success = false
		outcome.ErrorKind = models.ErrorKindFetch
		outcome.Error = err.Error()
		return channelRun{outcome: outcome}
	}

	if s.archiver != nil {
		// Archive failures never fail the sync; the feed itself was healthy.
		if err := s.archiver.Archive(ctx, propertyID, cfg.Channel, raw, now); err != nil {
			s.logger.Warn("Feed archive failed",
				zap.Uint("property_id", propertyID),
				zap.String("channel", string(cfg.Channel)),
				zap.Error(err),
			)
		}
	}

	fresh, warnings, err := feed.Parse(raw, cfg.Channel)
	outcome.Warnings = warnings
	if err != nil {
		var formatErr *feed.FormatError
		kind := models.ErrorKindFeedFormat
		if !errors.As(err, &formatErr) {
			kind = models.ErrorKindFetch
		}
		outcome.Success = false
		outcome.ErrorKind = kind
		outcome.Error = err.Error()
		return channelRun{outcome: outcome}
	}

	stored, err := s.store.Events(ctx, propertyID, cfg.Channel)
	if err != nil {
		outcome.Success = false
		outcome.ErrorKind = models.ErrorKindPersistence
		outcome.Error = err.Error()
		return channelRun{outcome: outcome}
	}

	return channelRun{
		outcome: outcome,
		diff:    reconcile.Reconcile(propertyID, cfg.Channel, fresh, stored),
	}
}

// applyDiff persists one channel's diff. The first write failure marks the
// outcome failed and abandons the channel's remaining writes; keyed upserts
// and deletes keep a partial application safe to re-run.
func (s *SyncService) applyDiff(ctx context.Context, propertyID uint, outcome models.SyncOutcome, diff reconcile.Diff) models.SyncOutcome {
	now := time.Now().UTC()

	fail := func(err error) models.SyncOutcome {
		outcome.Success = false
		outcome.ErrorKind = models.ErrorKindPersistence
		outcome.Error = err.Error()
		return outcome
	}

	for i := range diff.ToInsert {
		event := diff.ToInsert[i]
		event.LastSeenAt = now
		if err := s.store.UpsertEvent(ctx, &event); err != nil {
			return fail(err)
		}
		outcome.Inserted++
	}

	for i := range diff.ToUpdate {
		event := diff.ToUpdate[i]
		event.LastSeenAt = now
		if err := s.store.UpsertEvent(ctx, &event); err != nil {
			return fail(err)
		}
		outcome.Updated++
	}

	for _, uid := range diff.ToDelete {
		if err := s.store.DeleteEvent(ctx, propertyID, outcome.Channel, uid); err != nil {
			return fail(err)
		}
		outcome.Deleted++
	}

	return outcome
}

// propertyLock returns the mutex serializing writes for one property.
func (s *SyncService) propertyLock(propertyID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[propertyID] = lock
	}
	return lock
}
