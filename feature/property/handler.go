package property

import (
	"errors"
	"strconv"

	"property-manager/core/logger"
	calmodels "property-manager/feature/calendar/models"
	"property-manager/feature/property/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PropertyInput is the request body for creating and updating properties.
type PropertyInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// FeedConfigInput is the request body for setting a channel feed URL.
type FeedConfigInput struct {
	FeedURL string `json:"feedUrl"`
}

// Handler handles HTTP requests for properties.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the property routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/properties")
	group.Get("/", h.HandleListProperties)
	group.Post("/", h.HandleCreateProperty)
	group.Get("/:propertyID", h.HandleGetProperty)
	group.Put("/:propertyID", h.HandleUpdateProperty)
	group.Delete("/:propertyID", h.HandleDeleteProperty)
	group.Get("/:propertyID/channels", h.HandleListFeedConfigs)
	group.Put("/:propertyID/channels/:channel", h.HandleSetFeedConfig)
	group.Delete("/:propertyID/channels/:channel", h.HandleDeleteFeedConfig)
}

func (h *Handler) propertyID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("propertyID"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid property ID")
	}
	return uint(id), nil
}

func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)
	l.Error("Property request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// HandleListProperties returns all properties.
// @Summary List properties
// @Tags property
// @Produce json
// @Success 200 {array} models.Property "Properties"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /properties [get]
func (h *Handler) HandleListProperties(c *fiber.Ctx) error {
	properties, err := h.service.ListProperties(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(properties)
}

// HandleCreateProperty creates a property.
// @Summary Create a property
// @Tags property
// @Accept json
// @Produce json
// @Param property body PropertyInput true "Property"
// @Success 201 {object} models.Property "Created property"
// @Failure 400 {object} map[string]string "Invalid body"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /properties [post]
func (h *Handler) HandleCreateProperty(c *fiber.Ctx) error {
	var input PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	property := &models.Property{Name: input.Name, Address: input.Address, Notes: input.Notes}
	if err := h.service.CreateProperty(c.Context(), property); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// HandleGetProperty returns one property.
// @Summary Get a property
// @Tags property
// @Produce json
// @Param propertyID path int true "Property ID"
// @Success 200 {object} models.Property "Property"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /properties/{propertyID} [get]
func (h *Handler) HandleGetProperty(c *fiber.Ctx) error {
	id, err := h.propertyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	property, err := h.service.GetProperty(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(property)
}

// HandleUpdateProperty updates a property's editable fields.
// @Summary Update a property
// @Tags property
// @Accept json
// @Produce json
// @Param propertyID path int true "Property ID"
// @Param property body PropertyInput true "Property"
// @Success 200 {object} models.Property "Updated property"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /properties/{propertyID} [put]
func (h *Handler) HandleUpdateProperty(c *fiber.Ctx) error {
	id, err := h.propertyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	property, err := h.service.UpdateProperty(c.Context(), id, &models.Property{
		Name: input.Name, Address: input.Address, Notes: input.Notes,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(property)
}

// HandleDeleteProperty deletes a property and its calendar data.
// @Summary Delete a property
// @Tags property
// @Param propertyID path int true "Property ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /properties/{propertyID} [delete]
func (h *Handler) HandleDeleteProperty(c *fiber.Ctx) error {
	id, err := h.propertyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.DeleteProperty(c.Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListFeedConfigs returns the channel feed configuration for a property.
// @Summary List channel feed configs
// @Tags property
// @Produce json
// @Param propertyID path int true "Property ID"
// @Success 200 {array} models.ChannelFeedConfig "Feed configs"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /properties/{propertyID}/channels [get]
func (h *Handler) HandleListFeedConfigs(c *fiber.Ctx) error {
	id, err := h.propertyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	configs, err := h.service.ListFeedConfigs(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(configs)
}

// HandleSetFeedConfig sets or replaces a channel's feed URL.
// @Summary Set a channel feed URL
// @Tags property
// @Accept json
// @Produce json
// @Param propertyID path int true "Property ID"
// @Param channel path string true "Channel (airbnb, booking, expedia)"
// @Param config body FeedConfigInput true "Feed config"
// @Success 200 {object} models.ChannelFeedConfig "Feed config"
// @Failure 400 {object} map[string]string "Invalid channel"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /properties/{propertyID}/channels/{channel} [put]
func (h *Handler) HandleSetFeedConfig(c *fiber.Ctx) error {
	id, err := h.propertyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	channel := calmodels.Channel(c.Params("channel"))
	if !channel.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid channel"})
	}

	var input FeedConfigInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	config, err := h.service.SetFeedConfig(c.Context(), id, channel, input.FeedURL)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(config)
}

// HandleDeleteFeedConfig removes a channel's feed configuration.
// @Summary Delete a channel feed config
// @Tags property
// @Param propertyID path int true "Property ID"
// @Param channel path string true "Channel (airbnb, booking, expedia)"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /properties/{propertyID}/channels/{channel} [delete]
func (h *Handler) HandleDeleteFeedConfig(c *fiber.Ctx) error {
	id, err := h.propertyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	channel := calmodels.Channel(c.Params("channel"))
	if !channel.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid channel"})
	}

	if err := h.service.DeleteFeedConfig(c.Context(), id, channel); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
