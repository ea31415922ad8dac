package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/repository"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// LoopHandler provides HTTP endpoints for item sharing.
type LoopHandler struct {
	service   service.LoopService
	validator *validator.Validate
	logger    zerolog.Logger
	auth      fiber.Handler
}

// NewLoopHandler constructs a handler instance.
func NewLoopHandler(service service.LoopService, validator *validator.Validate, logger zerolog.Logger, auth fiber.Handler) *LoopHandler {
	return &LoopHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "loop_handler").Logger(),
		auth:      auth,
	}
}

// Register binds the loop routes. Reads are public; writes require auth.
func (h *LoopHandler) Register(router fiber.Router) {
	router.Get("/items", h.listItems)
	router.Get("/items/:id", h.getItem)
	router.Post("/items", h.auth, h.createItem)
	router.Put("/items/:id", h.auth, h.updateItem)
	router.Delete("/items/:id", h.auth, h.deleteItem)
}

func (h *LoopHandler) listItems(c *fiber.Ctx) error {
	filters := repository.LoopFilters{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		UserID:   c.Query("userId"),
	}

	items, err := h.service.List(withRequestContext(c), filters)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "loop items", items)
}

func (h *LoopHandler) getItem(c *fiber.Ctx) error {
	item, err := h.service.Get(withRequestContext(c), c.Params("id"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "loop item", item)
}

func (h *LoopHandler) createItem(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.LoopItemCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Create(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "loop item created", item)
}

func (h *LoopHandler) updateItem(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.LoopItemUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(withRequestContext(c), c.Params("id"), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "loop item updated", item)
}

func (h *LoopHandler) deleteItem(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.Delete(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
