package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// NotificationHandler provides HTTP endpoints for per-user notifications.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs a handler instance.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register binds the notification routes. The whole group is auth-protected
// by the router.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/unread-count", h.countUnread)
	router.Post("/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	notifications, err := h.service.List(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "notifications", notifications)
}

func (h *NotificationHandler) countUnread(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	count, err := h.service.CountUnread(withRequestContext(c), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "unread count", fiber.Map{"count": count})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.MarkRead(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
