package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// ChatHandler provides HTTP endpoints for direct messages.
type ChatHandler struct {
	service   service.ChatService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewChatHandler constructs a handler instance.
func NewChatHandler(service service.ChatService, validator *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register binds the chat routes. The whole group is auth-protected by the
// router.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/conversations", h.listConversations)
	router.Post("/conversations", h.createConversation)
	router.Get("/conversations/:id/messages", h.listMessages)
	router.Post("/conversations/:id/messages", h.sendMessage)
}

func (h *ChatHandler) listConversations(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	conversations, err := h.service.ListConversations(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "conversations", conversations)
}

func (h *ChatHandler) createConversation(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ConversationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	conversation, err := h.service.CreateConversation(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "conversation created", conversation)
}

func (h *ChatHandler) listMessages(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	messages, err := h.service.ListMessages(withRequestContext(c), c.Params("id"), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "messages", messages)
}

func (h *ChatHandler) sendMessage(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.MessageSendRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	message, err := h.service.SendMessage(withRequestContext(c), c.Params("id"), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message sent", message)
}
