package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// SeedHandler exposes the tooling endpoint for loading demo data.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires the seed route.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/seed", h.seed)
}

type seedRequest struct {
	Token string `json:"token"`
}

func (h *SeedHandler) seed(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	if token == "" {
		var payload seedRequest
		if err := c.BodyParser(&payload); err == nil {
			token = payload.Token
		}
	}

	if err := h.service.Seed(c.Context(), token); err != nil {
		switch err {
		case service.ErrSeedDisabled:
			return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
		case service.ErrSeedUnauthorized:
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		default:
			h.logger.Error().Err(err).Msg("seed operation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
		}
	}

	return utils.SendSuccess(c, "demo data seeded", nil)
}
