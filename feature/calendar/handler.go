package calendar

import (
	"strconv"

	"property-manager/core/logger"
	"property-manager/feature/calendar/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the calendar engine.
type Handler struct {
	store  Store
	sync   *SyncService
	batch  *BatchService
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store Store, sync *SyncService, batch *BatchService, l *zap.Logger) *Handler {
	return &Handler{store: store, sync: sync, batch: batch, logger: l}
}

// RegisterRoutes registers the calendar routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/calendar")
	group.Post("/sync", h.HandleSyncAll)
	group.Post("/sync/:propertyID", h.HandleSyncProperty)
	group.Get("/events/:propertyID", h.HandleListEvents)
}

// HandleSyncAll triggers a batch sync across all configured properties.
// @Summary Sync all properties
// @Description Runs the calendar reconciliation engine for every property with at least one configured channel.
// @Tags calendar
// @Produce json
// @Success 200 {object} models.BatchSyncResult "Batch summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /calendar/sync [post]
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	result, err := h.batch.SyncAll(c.Context())
	if err != nil {
		l.Error("Batch sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleSyncProperty triggers a sync for one property.
// @Summary Sync one property
// @Description Fetches, parses and reconciles every configured channel feed for the property.
// @Tags calendar
// @Produce json
// @Param propertyID path int true "Property ID"
// @Success 200 {object} models.PropertySyncResult "Per-channel outcomes"
// @Failure 400 {object} map[string]string "Invalid property ID"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /calendar/sync/{propertyID} [post]
func (h *Handler) HandleSyncProperty(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	propertyID, err := strconv.ParseUint(c.Params("propertyID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid property ID",
		})
	}

	result, err := h.sync.SyncProperty(c.Context(), uint(propertyID))
	if err != nil {
		l.Error("Property sync failed", zap.Uint64("property_id", propertyID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleListEvents returns the stored internal calendar for one property.
// @Summary List canonical events
// @Description Returns the merged internal calendar for a property, optionally filtered by channel.
// @Tags calendar
// @Produce json
// @Param propertyID path int true "Property ID"
// @Param channel query string false "Channel filter (airbnb, booking, expedia)"
// @Success 200 {array} models.CanonicalEvent "Stored events"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /calendar/events/{propertyID} [get]
func (h *Handler) HandleListEvents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	propertyID, err := strconv.ParseUint(c.Params("propertyID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid property ID",
		})
	}

	channel := models.Channel(c.Query("channel"))
	if channel != "" && !channel.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid channel",
		})
	}

	events, err := h.store.Events(c.Context(), uint(propertyID), channel)
	if err != nil {
		l.Error("Event listing failed", zap.Uint64("property_id", propertyID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(events)
}
