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
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

type mockLoopService struct {
	lastFilters repository.LoopFilters
	lastUserID  string
	item        models.LoopItem
	err         error
}

func (m *mockLoopService) List(_ context.Context, filters repository.LoopFilters) ([]models.LoopItem, error) {
	m.lastFilters = filters
	if m.err != nil {
		return nil, m.err
	}
	return []models.LoopItem{m.item}, nil
}

func (m *mockLoopService) Get(_ context.Context, _ string) (models.LoopItem, error) {
	return m.item, m.err
}

func (m *mockLoopService) Create(_ context.Context, userID string, payload dto.LoopItemCreateRequest) (models.LoopItem, error) {
	m.lastUserID = userID
	if m.err != nil {
		return models.LoopItem{}, m.err
	}
	return payload.ToModel(userID), nil
}

func (m *mockLoopService) Update(_ context.Context, _, userID string, _ dto.LoopItemUpdateRequest) (models.LoopItem, error) {
	m.lastUserID = userID
	return m.item, m.err
}

func (m *mockLoopService) Delete(_ context.Context, _, userID string) error {
	m.lastUserID = userID
	return m.err
}

func newLoopApp(svc *mockLoopService, auth fiber.Handler) *fiber.App {
	app := fiber.New()
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	handler.NewLoopHandler(svc, validate, logger, auth).Register(app.Group("/api/loop"))
	return app
}

func TestLoopHandler_ListPassesFilters(t *testing.T) {
	svc := &mockLoopService{item: models.LoopItem{Title: "Ladder"}}
	app := newLoopApp(svc, rejectAuth)

	req := httptest.NewRequest(http.MethodGet, "/api/loop/items?category=tools&type=offer&status=available", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "tools", svc.lastFilters.Category)
	require.Equal(t, "offer", svc.lastFilters.Type)
	require.Equal(t, "available", svc.lastFilters.Status)
}

func TestLoopHandler_ListIsPublic(t *testing.T) {
	svc := &mockLoopService{}
	app := newLoopApp(svc, rejectAuth)

	req := httptest.NewRequest(http.MethodGet, "/api/loop/items", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoopHandler_CreateRequiresAuth(t *testing.T) {
	svc := &mockLoopService{}
	app := newLoopApp(svc, rejectAuth)

	req := httptest.NewRequest(http.MethodPost, "/api/loop/items", strings.NewReader(`{"title":"Ladder"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, svc.lastUserID)
}

func TestLoopHandler_CreateSuccess(t *testing.T) {
	svc := &mockLoopService{}
	app := newLoopApp(svc, authAs("user-1"))

	body := `{"title":"Ladder","category":"tools","type":"offer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/loop/items", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "user-1", svc.lastUserID)

	var payload struct {
		Success bool            `json:"success"`
		Data    models.LoopItem `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, "Ladder", payload.Data.Title)
	require.Equal(t, "user-1", payload.Data.UserID)
}

func TestLoopHandler_ValidationErrorsAreStructured(t *testing.T) {
	svc := &mockLoopService{err: validator.New(validator.WithRequiredStructEnabled()).Struct(dto.LoopItemCreateRequest{})}
	app := newLoopApp(svc, authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/api/loop/items", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	decodeResponse(t, resp, &payload)
	require.False(t, payload.Success)
	require.Equal(t, "required", payload.Errors["Title"])
}

func TestLoopHandler_UpdateNotOwnedIsNotFound(t *testing.T) {
	svc := &mockLoopService{err: gorm.ErrRecordNotFound}
	app := newLoopApp(svc, authAs("mallory"))

	req := httptest.NewRequest(http.MethodPut, "/api/loop/items/item-1", strings.NewReader(`{"title":"Stolen"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLoopHandler_DeleteReturnsNoContent(t *testing.T) {
	svc := &mockLoopService{}
	app := newLoopApp(svc, authAs("user-1"))

	req := httptest.NewRequest(http.MethodDelete, "/api/loop/items/item-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, data)
}
