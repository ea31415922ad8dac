package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/handler"
	"github.com/hommiefi/hommiefi-api/internal/models"
)

type mockThreadService struct {
	lastCategory string
	likedPost    string
	likedBy      string
	post         models.ThreadPost
	comment      models.ThreadComment
	err          error
}

func (m *mockThreadService) ListPosts(_ context.Context, category string) ([]models.ThreadPost, error) {
	m.lastCategory = category
	if m.err != nil {
		return nil, m.err
	}
	return []models.ThreadPost{m.post}, nil
}

func (m *mockThreadService) GetPost(_ context.Context, _ string) (models.ThreadPost, error) {
	return m.post, m.err
}

func (m *mockThreadService) CreatePost(_ context.Context, userID string, payload dto.ThreadPostCreateRequest) (models.ThreadPost, error) {
	if m.err != nil {
		return models.ThreadPost{}, m.err
	}
	return payload.ToModel(userID), nil
}

func (m *mockThreadService) DeletePost(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockThreadService) Like(_ context.Context, postID, userID string) (models.ThreadPost, error) {
	m.likedPost = postID
	m.likedBy = userID
	return m.post, m.err
}

func (m *mockThreadService) Unlike(_ context.Context, postID, userID string) (models.ThreadPost, error) {
	m.likedPost = postID
	m.likedBy = userID
	return m.post, m.err
}

func (m *mockThreadService) CreateComment(_ context.Context, postID, userID string, payload dto.ThreadCommentCreateRequest) (models.ThreadComment, error) {
	if m.err != nil {
		return models.ThreadComment{}, m.err
	}
	return payload.ToModel(postID, userID), nil
}

func (m *mockThreadService) ListComments(_ context.Context, _ string) ([]models.ThreadComment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.ThreadComment{m.comment}, nil
}

func newThreadApp(svc *mockThreadService, auth fiber.Handler) *fiber.App {
	app := fiber.New()
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	handler.NewThreadHandler(svc, validate, logger, auth).Register(app.Group("/api/thread"))
	return app
}

func TestThreadHandler_ListPostsPublicWithCategory(t *testing.T) {
	svc := &mockThreadService{post: models.ThreadPost{Title: "Garage sale"}}
	app := newThreadApp(svc, rejectAuth)

	req := httptest.NewRequest(http.MethodGet, "/api/thread/posts?category=announcement", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "announcement", svc.lastCategory)
}

func TestThreadHandler_LikeReturnsNoContent(t *testing.T) {
	svc := &mockThreadService{}
	app := newThreadApp(svc, authAs("user-2"))

	req := httptest.NewRequest(http.MethodPost, "/api/thread/posts/post-1/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	require.Equal(t, "post-1", svc.likedPost)
	require.Equal(t, "user-2", svc.likedBy)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestThreadHandler_LikeMissingPostIsNotFound(t *testing.T) {
	svc := &mockThreadService{err: gorm.ErrRecordNotFound}
	app := newThreadApp(svc, authAs("user-2"))

	req := httptest.NewRequest(http.MethodPost, "/api/thread/posts/ghost/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestThreadHandler_CommentCreated(t *testing.T) {
	svc := &mockThreadService{}
	app := newThreadApp(svc, authAs("user-3"))

	body := `{"content":"count me in"}`
	req := httptest.NewRequest(http.MethodPost, "/api/thread/posts/post-1/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Data models.ThreadComment `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.Equal(t, "post-1", payload.Data.PostID)
	require.Equal(t, "user-3", payload.Data.UserID)
	require.Equal(t, "count me in", payload.Data.Content)
}

func TestThreadHandler_UnlikeRequiresAuth(t *testing.T) {
	svc := &mockThreadService{}
	app := newThreadApp(svc, rejectAuth)

	req := httptest.NewRequest(http.MethodDelete, "/api/thread/posts/post-1/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, svc.likedBy)
}
