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

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/handler"
	"github.com/hommiefi/hommiefi-api/internal/service"
)

type mockHelpOutService struct {
	lastUserID  string
	lastPayload dto.EmergencyRequest
	result      service.EmergencyResult
	err         error
}

func (m *mockHelpOutService) RequestHelp(_ context.Context, userID string, payload dto.EmergencyRequest) (service.EmergencyResult, error) {
	m.lastUserID = userID
	m.lastPayload = payload
	return m.result, m.err
}

func newHelpOutApp(svc *mockHelpOutService, auth fiber.Handler) *fiber.App {
	app := fiber.New()
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	group := app.Group("/api/emergency", auth)
	handler.NewHelpOutHandler(svc, validate, logger).Register(group)
	return app
}

func TestHelpOutHandler_RequestCreated(t *testing.T) {
	svc := &mockHelpOutService{result: service.EmergencyResult{Notified: 4}}
	app := newHelpOutApp(svc, authAs("user-1"))

	body := `{"title":"Flat tire","description":"Stuck on Main St","urgency":"high","location":"Main St & 5th"}`
	req := httptest.NewRequest(http.MethodPost, "/api/emergency/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "user-1", svc.lastUserID)
	require.Equal(t, "high", svc.lastPayload.Urgency)

	var payload struct {
		Data service.EmergencyResult `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.Equal(t, 4, payload.Data.Notified)
}

func TestHelpOutHandler_RequestRequiresAuth(t *testing.T) {
	svc := &mockHelpOutService{}
	app := newHelpOutApp(svc, rejectAuth)

	req := httptest.NewRequest(http.MethodPost, "/api/emergency/requests", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, svc.lastUserID)
}

func TestHelpOutHandler_ValidationFailure(t *testing.T) {
	svc := &mockHelpOutService{err: validator.New(validator.WithRequiredStructEnabled()).Struct(dto.EmergencyRequest{})}
	app := newHelpOutApp(svc, authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/api/emergency/requests", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	decodeResponse(t, resp, &payload)
	require.Equal(t, "required", payload.Errors["Urgency"])
}
