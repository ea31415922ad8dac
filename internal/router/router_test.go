package router_test

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

	"github.com/hommiefi/hommiefi-api/internal/config"
	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/handler"
	"github.com/hommiefi/hommiefi-api/internal/router"
	"github.com/hommiefi/hommiefi-api/internal/service"
)

type stubHelpOutService struct {
	calls int
}

func (s *stubHelpOutService) RequestHelp(_ context.Context, _ string, _ dto.EmergencyRequest) (service.EmergencyResult, error) {
	s.calls++
	return service.EmergencyResult{Notified: 1}, nil
}

func TestRouterRateLimitsEmergencyRequests(t *testing.T) {
	svc := &stubHelpOutService{}
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Hommiefi API"}, router.Dependencies{
		HelpOutHandler: handler.NewHelpOutHandler(svc, validate, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", "user-1")
			return c.Next()
		},
	})

	body := `{"title":"Flat tire","description":"Stuck on Main St","urgency":"high","location":"Main St & 5th"}`
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/emergency/requests", strings.NewReader(body))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/emergency/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, 5, svc.calls, "the sixth request is rejected before the service runs")
}

func TestRouterHealthEndpointIsPublic(t *testing.T) {
	app := fiber.New()
	router.Register(app, config.Config{AppName: "Hommiefi API", AppEnv: "test"}, router.Dependencies{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Hommiefi API", resp.Header.Get("X-Application"))
}
