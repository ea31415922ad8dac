package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/service"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

// ThreadHandler provides HTTP endpoints for the community feed.
type ThreadHandler struct {
	service   service.ThreadService
	validator *validator.Validate
	logger    zerolog.Logger
	auth      fiber.Handler
}

// NewThreadHandler constructs a handler instance.
func NewThreadHandler(service service.ThreadService, validator *validator.Validate, logger zerolog.Logger, auth fiber.Handler) *ThreadHandler {
	return &ThreadHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "thread_handler").Logger(),
		auth:      auth,
	}
}

// Register binds the thread routes. Reads are public; writes require auth.
func (h *ThreadHandler) Register(router fiber.Router) {
	router.Get("/posts", h.listPosts)
	router.Get("/posts/:id", h.getPost)
	router.Post("/posts", h.auth, h.createPost)
	router.Delete("/posts/:id", h.auth, h.deletePost)
	router.Post("/posts/:id/like", h.auth, h.likePost)
	router.Delete("/posts/:id/like", h.auth, h.unlikePost)
	router.Get("/posts/:id/comments", h.listComments)
	router.Post("/posts/:id/comments", h.auth, h.createComment)
}

func (h *ThreadHandler) listPosts(c *fiber.Ctx) error {
	posts, err := h.service.ListPosts(withRequestContext(c), c.Query("category"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "thread posts", posts)
}

func (h *ThreadHandler) getPost(c *fiber.Ctx) error {
	post, err := h.service.GetPost(withRequestContext(c), c.Params("id"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "thread post", post)
}

func (h *ThreadHandler) createPost(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ThreadPostCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.CreatePost(withRequestContext(c), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "post created", post)
}

func (h *ThreadHandler) deletePost(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.DeletePost(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ThreadHandler) likePost(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if _, err := h.service.Like(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ThreadHandler) unlikePost(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if _, err := h.service.Unlike(withRequestContext(c), c.Params("id"), userID); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ThreadHandler) listComments(c *fiber.Ctx) error {
	comments, err := h.service.ListComments(withRequestContext(c), c.Params("id"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "comments", comments)
}

func (h *ThreadHandler) createComment(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ThreadCommentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	comment, err := h.service.CreateComment(withRequestContext(c), c.Params("id"), userID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment created", comment)
}
