package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/repository"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// GigHandler provides HTTP endpoints for micro-jobs.
type GigHandler struct {
	service   service.GigService
	validator *validator.Validate
	logger    zerolog.Logger
	auth      fiber.Handler
}

// NewGigHandler constructs a handler instance.
func NewGigHandler(service service.GigService, validator *validator.Validate, logger zerolog.Logger, auth fiber.Handler) *GigHandler {
	return &GigHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "gig_handler").Logger(),
		auth:      auth,
	}
}

// Register binds the gig routes. Reads are public; writes require auth.
func (h *GigHandler) Register(router fiber.Router) {
	router.Get("/", h.listGigs)
	router.Get("/:id", h.getGig)
	router.Post("/", h.auth, h.createGig)
	router.Put("/:id", h.auth, h.updateGig)
	router.Delete("/:id", h.auth, h.deleteGig)
	router.Post("/:id/apply", h.auth, h.apply)
	router.Get("/:id/applications", h.auth, h.listApplications)
}

func (h *GigHandler) listGigs(c *fiber.Ctx) error {
	filters := repository.GigFilters{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		UserID:   c.Query("userId"),
	}

	gigs, err := h.service.List(withRequestContext(c), filters)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "gigs", gigs)
}

func (h *GigHandler) getGig(c *fiber.Ctx) error {
	gig, err := h.service.Get(withRequestContext(c), c.Params("id"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "gig", gig)
}

func (h *GigHandler) createGig(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.GigCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	gig, err := h.service.Create(withRequestContext(c), userID, payload)
	if err != nil {
		if errors.Is(err, service.ErrGigPricing) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "gig created", gig)
}

func (h *GigHandler) updateGig(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.GigUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	gig, err := h.service.Update(withRequestContext(c), c.Params("id"), userID, payload)
	if err != nil {
		if errors.Is(err, service.ErrGigPricing) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "gig updated", gig)
}

func (h *GigHandler) deleteGig(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.Delete(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *GigHandler) apply(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.GigApplicationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.Apply(withRequestContext(c), c.Params("id"), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *GigHandler) listApplications(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	applications, err := h.service.ListApplications(withRequestContext(c), c.Params("id"), userID)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "applications", applications)
}
