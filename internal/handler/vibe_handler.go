package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// VibeHandler provides HTTP endpoints for availability sessions.
type VibeHandler struct {
	service   service.VibeService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewVibeHandler constructs a handler instance.
func NewVibeHandler(service service.VibeService, validator *validator.Validate, logger zerolog.Logger) *VibeHandler {
	return &VibeHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "vibe_handler").Logger(),
	}
}

// Register binds the vibe routes. The whole group is auth-protected by the
// router.
func (h *VibeHandler) Register(router fiber.Router) {
	router.Get("/available", h.listAvailable)
	router.Get("/session", h.getSession)
	router.Post("/session", h.saveSession)
	router.Put("/session", h.updateSession)
	router.Delete("/session", h.endSession)
}

func (h *VibeHandler) listAvailable(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	sessions, err := h.service.ListActive(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "available sessions", sessions)
}

func (h *VibeHandler) getSession(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	session, err := h.service.GetCurrent(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "vibe session", session)
}

func (h *VibeHandler) saveSession(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.VibeSessionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Save(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "vibe session saved", session)
}

func (h *VibeHandler) updateSession(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.VibeSessionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Update(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "vibe session updated", session)
}

func (h *VibeHandler) endSession(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.End(withRequestContext(c), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
