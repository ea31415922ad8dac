package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// HavenHandler provides HTTP endpoints for support groups.
type HavenHandler struct {
	service   service.HavenService
	validator *validator.Validate
	logger    zerolog.Logger
	auth      fiber.Handler
}

// NewHavenHandler constructs a handler instance.
func NewHavenHandler(service service.HavenService, validator *validator.Validate, logger zerolog.Logger, auth fiber.Handler) *HavenHandler {
	return &HavenHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "haven_handler").Logger(),
		auth:      auth,
	}
}

// Register binds the haven routes. Group listings are public; membership
// operations require auth. The static "mine" route registers before the
// ":id" routes so it is not captured as a group id.
func (h *HavenHandler) Register(router fiber.Router) {
	router.Get("/groups", h.listGroups)
	router.Get("/groups/mine", h.auth, h.listMyGroups)
	router.Get("/groups/:id", h.getGroup)
	router.Post("/groups", h.auth, h.createGroup)
	router.Post("/groups/:id/join", h.auth, h.joinGroup)
	router.Post("/groups/:id/leave", h.auth, h.leaveGroup)
}

func (h *HavenHandler) listGroups(c *fiber.Ctx) error {
	groups, err := h.service.ListGroups(withRequestContext(c))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "haven groups", groups)
}

func (h *HavenHandler) getGroup(c *fiber.Ctx) error {
	group, err := h.service.GetGroup(withRequestContext(c), c.Params("id"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "haven group", group)
}

func (h *HavenHandler) createGroup(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.HavenGroupCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	group, err := h.service.CreateGroup(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "haven group created", group)
}

func (h *HavenHandler) joinGroup(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if _, err := h.service.Join(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HavenHandler) leaveGroup(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.Leave(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HavenHandler) listMyGroups(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	groups, err := h.service.ListUserGroups(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "my haven groups", groups)
}
