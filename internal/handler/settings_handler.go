package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// SettingsHandler provides HTTP endpoints for per-user settings.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler constructs a handler instance.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Register binds the settings routes. The whole group is auth-protected by
// the router.
func (h *SettingsHandler) Register(router fiber.Router) {
	router.Get("/", h.get)
	router.Put("/", h.save)
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	settings, err := h.service.Get(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "settings", settings)
}

func (h *SettingsHandler) save(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload models.UserSettings
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := h.service.Save(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "settings saved", settings)
}
