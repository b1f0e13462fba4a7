package calendar

import (
	"context"
	"sync"

	"property-manager/feature/calendar/models"

	"go.uber.org/zap"
)

// defaultWorkers bounds batch concurrency when no value is configured.
// Unbounded concurrency would hammer the three channel providers at once.
const defaultWorkers = 5

// BatchService runs the sync coordinator across every configured property
// with a fixed worker pool.
type BatchService struct {
	store   Store
	sync    *SyncService
	workers int
	logger  *zap.Logger
}

// NewBatchService creates a batch coordinator with the given pool size.
func NewBatchService(store Store, sync *SyncService, workers int, logger *zap.Logger) *BatchService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &BatchService{
		store:   store,
		sync:    sync,
		workers: workers,
		logger:  logger,
	}
}

// SyncAll syncs every property that has at least one configured channel and
// returns the fleet-level summary. It returns an error only when the property
// set cannot be enumerated at all; individual property failures are counted,
// logged and carried in the result.
func (b *BatchService) SyncAll(ctx context.Context) (*models.BatchSyncResult, error) {
	ids, err := b.store.ConfiguredPropertyIDs(ctx)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Batch sync started",
		zap.Int("properties", len(ids)),
		zap.Int("workers", b.workers),
	)

	result := &models.BatchSyncResult{Attempted: len(ids)}
	var mu sync.Mutex

	idChan := make(chan uint)
	var wg sync.WaitGroup

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idChan {
				propertyResult, err := b.sync.SyncProperty(ctx, id)

				mu.Lock()
				switch {
				case err != nil:
					// Store-level failure before any channel ran; synthesize
					// a failed result so the batch summary stays complete.
					b.logger.Error("Property sync aborted", zap.Uint("property_id", id), zap.Error(err))
					result.Failed++
					result.Results = append(result.Results, models.PropertySyncResult{PropertyID: id})
				case propertyResult.Success:
					result.Succeeded++
					result.Results = append(result.Results, *propertyResult)
				default:
					result.Failed++
					result.Results = append(result.Results, *propertyResult)
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range ids {
		idChan <- id
	}
	close(idChan)
	wg.Wait()

	b.logger.Info("Batch sync finished",
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}
