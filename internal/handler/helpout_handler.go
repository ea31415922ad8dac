package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// HelpOutHandler provides the emergency request endpoint.
type HelpOutHandler struct {
	service   service.HelpOutService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewHelpOutHandler constructs a handler instance.
func NewHelpOutHandler(service service.HelpOutService, validator *validator.Validate, logger zerolog.Logger) *HelpOutHandler {
	return &HelpOutHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "helpout_handler").Logger(),
	}
}

// Register binds the emergency routes. The whole group is auth-protected by
// the router.
func (h *HelpOutHandler) Register(router fiber.Router) {
	router.Post("/requests", h.request)
}

func (h *HelpOutHandler) request(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.EmergencyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.RequestHelp(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.logger.Info().Str("user_id", userID).Int("notified", result.Notified).Msg("emergency request fanned out")
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "emergency request sent", result)
}
