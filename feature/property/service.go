package property

import (
	"context"
	"errors"
	"fmt"

	calmodels "property-manager/feature/calendar/models"
	"property-manager/feature/property/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a property does not exist.
var ErrNotFound = errors.New("property not found")

// Service handles property and channel feed configuration operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new property service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListProperties returns all properties ordered by ID.
func (s *Service) ListProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.WithContext(ctx).Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetProperty returns one property by ID.
func (s *Service) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.WithContext(ctx).First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load property %d: %w", id, err)
	}
	return &property, nil
}

// CreateProperty persists a new property.
func (s *Service) CreateProperty(ctx context.Context, property *models.Property) error {
	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	s.logger.Info("Property created", zap.Uint("property_id", property.ID), zap.String("name", property.Name))
	return nil
}

// UpdateProperty applies the editable fields to an existing property.
func (s *Service) UpdateProperty(ctx context.Context, id uint, input *models.Property) (*models.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	property.Name = input.Name
	property.Address = input.Address
	property.Notes = input.Notes

	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return nil, fmt.Errorf("failed to update property %d: %w", id, err)
	}
	return property, nil
}

// DeleteProperty removes a property together with its feed configuration and
// canonical events.
func (s *Service) DeleteProperty(ctx context.Context, id uint) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&calmodels.CanonicalEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&calmodels.ChannelFeedConfig{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}

	s.logger.Info("Property deleted", zap.Uint("property_id", id))
	return nil
}

// ListFeedConfigs returns the channel feed configuration for one property,
// including channels with an empty URL.
func (s *Service) ListFeedConfigs(ctx context.Context, propertyID uint) ([]calmodels.ChannelFeedConfig, error) {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	var configs []calmodels.ChannelFeedConfig
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("channel").
		Find(&configs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feed configs for property %d: %w", propertyID, err)
	}
	return configs, nil
}

// SetFeedConfig creates or replaces the feed URL for one property channel.
// Setting an empty URL disables syncing for that channel without removing the
// configuration row.
func (s *Service) SetFeedConfig(ctx context.Context, propertyID uint, channel calmodels.Channel, feedURL string) (*calmodels.ChannelFeedConfig, error) {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	config := &calmodels.ChannelFeedConfig{
		PropertyID: propertyID,
		Channel:    channel,
		FeedURL:    feedURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{"feed_url", "updated_at"}),
	}).Create(config).Error
	if err != nil {
		return nil, fmt.Errorf("failed to set feed config for property %d: %w", propertyID, err)
	}

	s.logger.Info("Feed config set",
		zap.Uint("property_id", propertyID),
		zap.String("channel", string(channel)),
	)
	return config, nil
}

// DeleteFeedConfig removes the feed configuration for one property channel.
// The channel's stored events are removed too; without a feed there is no
// snapshot to reconcile them against.
func (s *Service) DeleteFeedConfig(ctx context.Context, propertyID uint, channel calmodels.Channel) error {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ? AND channel = ?", propertyID, channel).
			Delete(&calmodels.CanonicalEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("property_id = ? AND channel = ?", propertyID, channel).
			Delete(&calmodels.ChannelFeedConfig{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete feed config for property %d: %w", propertyID, err)
	}
	return nil
}
