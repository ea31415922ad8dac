package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/middleware"
	"github.com/hommiefi/hommiefi-api/internal/service"
)

// RelayHandler wires the global websocket relay endpoint.
type RelayHandler struct {
	service service.RelayService
	logger  zerolog.Logger
}

// NewRelayHandler creates a relay handler instance.
func NewRelayHandler(service service.RelayService, logger zerolog.Logger) *RelayHandler {
	return &RelayHandler{
		service: service,
		logger:  logger.With().Str("component", "relay_handler").Logger(),
	}
}

// Register binds the websocket upgrade route.
func (h *RelayHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
			c.Locals("request_ctx", ctx)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *RelayHandler) handleConnection(conn *websocket.Conn) {
	userID := websocketUserID(conn)
	correlation := fmt.Sprint(conn.Locals("correlation_id"))
	baseCtx, _ := conn.Locals("request_ctx").(context.Context)

	opts := service.RelayConnectionOptions{
		UserID:        userID,
		CorrelationID: correlation,
		Context:       baseCtx,
	}

	h.logger.Info().Str("user_id", userID).Msg("relay websocket connected")
	h.service.ServeConnection(conn, opts)
	h.logger.Info().Str("user_id", userID).Msg("relay websocket disconnected")
}

func websocketUserID(conn *websocket.Conn) string {
	if value, ok := conn.Locals("user_id").(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
