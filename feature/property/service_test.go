package property_test

import (
	"context"
	"testing"
	"time"

	"property-manager/core/database"
	"property-manager/core/utils"
	calmodels "property-manager/feature/calendar/models"
	"property-manager/feature/property"
	"property-manager/feature/property/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*property.Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Property{}, &calmodels.ChannelFeedConfig{}, &calmodels.CanonicalEvent{})
	require.NoError(t, err)

	return property.NewService(db, zap.NewNop()), db
}

func TestCreateAndGetProperty(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created := &models.Property{Name: "Seaside Cottage", Address: "1 Beach Rd"}
	require.NoError(t, svc.CreateProperty(ctx, created))
	require.NotZero(t, created.ID)

	loaded, err := svc.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seaside Cottage", loaded.Name)
	assert.Equal(t, "1 Beach Rd", loaded.Address)
}

func TestGetPropertyNotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetProperty(context.Background(), 999)
	assert.ErrorIs(t, err, property.ErrNotFound)
}

func TestUpdateProperty(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created := &models.Property{Name: "Old Name"}
	require.NoError(t, svc.CreateProperty(ctx, created))

	updated, err := svc.UpdateProperty(ctx, created.ID, &models.Property{
		Name: "New Name", Notes: "repainted",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "repainted", updated.Notes)
}

func TestDeletePropertyCascades(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	created := &models.Property{Name: "Doomed"}
	require.NoError(t, svc.CreateProperty(ctx, created))

	_, err := svc.SetFeedConfig(ctx, created.ID, calmodels.ChannelAirbnb, "https://airbnb.example/feed.ics")
	require.NoError(t, err)
	require.NoError(t, db.Create(&calmodels.CanonicalEvent{
		PropertyID: created.ID,
		Channel:    calmodels.ChannelAirbnb,
		UID:        "A1",
		StartDate:  utils.Date(2025, time.June, 1),
		EndDate:    utils.Date(2025, time.June, 5),
		Status:     calmodels.StatusConfirmed,
	}).Error)

	require.NoError(t, svc.DeleteProperty(ctx, created.ID))

	var configCount, eventCount int64
	db.Model(&calmodels.ChannelFeedConfig{}).Count(&configCount)
	db.Model(&calmodels.CanonicalEvent{}).Count(&eventCount)
	assert.Zero(t, configCount)
	assert.Zero(t, eventCount)

	_, err = svc.GetProperty(ctx, created.ID)
	assert.ErrorIs(t, err, property.ErrNotFound)
}

func TestSetFeedConfigReplacesURL(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	created := &models.Property{Name: "Cabin"}
	require.NoError(t, svc.CreateProperty(ctx, created))

	_, err := svc.SetFeedConfig(ctx, created.ID, calmodels.ChannelBooking, "https://booking.example/v1.ics")
	require.NoError(t, err)
	_, err = svc.SetFeedConfig(ctx, created.ID, calmodels.ChannelBooking, "https://booking.example/v2.ics")
	require.NoError(t, err)

	var count int64
	db.Model(&calmodels.ChannelFeedConfig{}).Count(&count)
	assert.EqualValues(t, 1, count, "one row per (property, channel)")

	configs, err := svc.ListFeedConfigs(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "https://booking.example/v2.ics", configs[0].FeedURL)
}

func TestListFeedConfigsIncludesDisabledChannels(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created := &models.Property{Name: "Flat"}
	require.NoError(t, svc.CreateProperty(ctx, created))

	_, err := svc.SetFeedConfig(ctx, created.ID, calmodels.ChannelExpedia, "")
	require.NoError(t, err)

	// The listing shows the disabled channel; only the sync engine skips it.
	configs, err := svc.ListFeedConfigs(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Empty(t, configs[0].FeedURL)
}

func TestDeleteFeedConfigRemovesChannelEvents(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	created := &models.Property{Name: "Loft"}
	require.NoError(t, svc.CreateProperty(ctx, created))

	_, err := svc.SetFeedConfig(ctx, created.ID, calmodels.ChannelAirbnb, "https://airbnb.example/feed.ics")
	require.NoError(t, err)
	require.NoError(t, db.Create(&calmodels.CanonicalEvent{
		PropertyID: created.ID,
		Channel:    calmodels.ChannelAirbnb,
		UID:        "A1",
		StartDate:  utils.Date(2025, time.June, 1),
		EndDate:    utils.Date(2025, time.June, 5),
		Status:     calmodels.StatusConfirmed,
	}).Error)
	require.NoError(t, db.Create(&calmodels.CanonicalEvent{
		PropertyID: created.ID,
		Channel:    calmodels.ChannelBooking,
		UID:        "B1",
		StartDate:  utils.Date(2025, time.July, 1),
		EndDate:    utils.Date(2025, time.July, 5),
		Status:     calmodels.StatusConfirmed,
	}).Error)

	require.NoError(t, svc.DeleteFeedConfig(ctx, created.ID, calmodels.ChannelAirbnb))

	var events []calmodels.CanonicalEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1, "only the removed channel's events go")
	assert.Equal(t, calmodels.ChannelBooking, events[0].Channel)
}
