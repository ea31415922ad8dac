package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// ProfileHandler provides HTTP endpoints for the authenticated user's
// profile.
type ProfileHandler struct {
	service   service.ProfileService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProfileHandler constructs a handler instance.
func NewProfileHandler(service service.ProfileService, validator *validator.Validate, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "profile_handler").Logger(),
	}
}

// RegisterAuth binds the current-user route under the auth group.
func (h *ProfileHandler) RegisterAuth(router fiber.Router) {
	router.Get("/user", h.current)
}

// RegisterProfile binds the profile update route under the profile group.
func (h *ProfileHandler) RegisterProfile(router fiber.Router) {
	router.Put("/", h.update)
}

func (h *ProfileHandler) current(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	user, err := h.service.Get(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "current user", user)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "profile updated", user)
}
