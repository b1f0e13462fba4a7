package calendar

import (
	"context"
	"fmt"
	"time"

	"property-manager/feature/calendar/models"
	propmodels "property-manager/feature/property/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the narrow persistence contract the engine requires. Any backend
// providing keyed reads, idempotent upserts and keyed deletes satisfies it;
// the engine never assumes exclusive access and never replaces whole tables.
type Store interface {
	// FeedConfigs returns the channel feed configuration rows for a property.
	// Rows with an empty URL are not returned.
	FeedConfigs(ctx context.Context, propertyID uint) ([]models.ChannelFeedConfig, error)

	// Events returns all stored events for one (property, channel). An empty
	// channel returns the property's events across all channels.
	Events(ctx context.Context, propertyID uint, channel models.Channel) ([]models.CanonicalEvent, error)

	// UpsertEvent writes an event keyed by (propertyID, channel, uid).
	UpsertEvent(ctx context.Context, event *models.CanonicalEvent) error

	// DeleteEvent removes the event with the given key. Deleting a missing
	// event is not an error.
	DeleteEvent(ctx context.Context, propertyID uint, channel models.Channel, uid string) error

	// UpdateLastSyncedAt records the completion time of a sync run.
	UpdateLastSyncedAt(ctx context.Context, propertyID uint, t time.Time) error

	// ConfiguredPropertyIDs lists properties with at least one feed URL.
	ConfiguredPropertyIDs(ctx context.Context) ([]uint, error)
}

// GormStore implements Store on a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by the given connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FeedConfigs(ctx context.Context, propertyID uint) ([]models.ChannelFeedConfig, error) {
	var configs []models.ChannelFeedConfig
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND feed_url <> ''", propertyID).
		Order("channel").
		Find(&configs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load feed configs for property %d: %w", propertyID, err)
	}
	return configs, nil
}

func (s *GormStore) Events(ctx context.Context, propertyID uint, channel models.Channel) ([]models.CanonicalEvent, error) {
	query := s.db.WithContext(ctx).Where("property_id = ?", propertyID)
	if channel != "" {
		query = query.Where("channel = ?", channel)
	}

	var events []models.CanonicalEvent
	if err := query.Order("channel, uid").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events for property %d: %w", propertyID, err)
	}
	return events, nil
}

func (s *GormStore) UpsertEvent(ctx context.Context, event *models.CanonicalEvent) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "channel"}, {Name: "uid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_date", "end_date", "status", "summary", "description", "last_seen_at", "updated_at",
			}),
		}).
		Create(event).Error
	if err != nil {
		return fmt.Errorf("failed to upsert event %s/%s: %w", event.Channel, event.UID, err)
	}
	return nil
}

func (s *GormStore) DeleteEvent(ctx context.Context, propertyID uint, channel models.Channel, uid string) error {
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND channel = ? AND uid = ?", propertyID, channel, uid).
		Delete(&models.CanonicalEvent{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete event %s/%s: %w", channel, uid, err)
	}
	return nil
}

func (s *GormStore) UpdateLastSyncedAt(ctx context.Context, propertyID uint, t time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&propmodels.Property{}).
		Where("id = ?", propertyID).
		Update("last_synced_at", t).Error
	if err != nil {
		return fmt.Errorf("failed to update last_synced_at for property %d: %w", propertyID, err)
	}
	return nil
}

func (s *GormStore) ConfiguredPropertyIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.ChannelFeedConfig{}).
		Where("feed_url <> ''").
		Distinct("property_id").
		Order("property_id").
		Pluck("property_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate configured properties: %w", err)
	}
	return ids, nil
}
