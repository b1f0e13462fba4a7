package property_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"property-manager/core/database"
	calmodels "property-manager/feature/calendar/models"
	"property-manager/feature/property"
	"property-manager/feature/property/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}, &calmodels.ChannelFeedConfig{}, &calmodels.CanonicalEvent{}))

	app := fiber.New()
	feature := property.NewFeature(db, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app
}

func TestPropertyLifecycleOverHTTP(t *testing.T) {
	app := setupApp(t)

	// Create
	req := httptest.NewRequest("POST", "/properties/", strings.NewReader(`{"name":"Seaside Cottage","address":"1 Beach Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Property
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotZero(t, created.ID)

	// Configure a channel feed
	req = httptest.NewRequest("PUT", "/properties/1/channels/airbnb", strings.NewReader(`{"feedUrl":"https://airbnb.example/feed.ics"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// List configs
	resp, err = app.Test(httptest.NewRequest("GET", "/properties/1/channels", nil), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var configs []calmodels.ChannelFeedConfig
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&configs))
	require.Len(t, configs, 1)
	assert.Equal(t, calmodels.ChannelAirbnb, configs[0].Channel)

	// Delete the config, then the property
	resp, err = app.Test(httptest.NewRequest("DELETE", "/properties/1/channels/airbnb", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/properties/1", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/properties/1", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreatePropertyValidation(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/properties/", strings.NewReader(`{"address":"no name"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSetFeedConfigRejectsUnknownChannel(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/properties/", strings.NewReader(`{"name":"Cabin"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/properties/1/channels/vrbo", strings.NewReader(`{"feedUrl":"https://vrbo.example/feed.ics"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFeedConfigOnMissingProperty(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("PUT", "/properties/404/channels/airbnb", strings.NewReader(`{"feedUrl":"https://airbnb.example/feed.ics"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
