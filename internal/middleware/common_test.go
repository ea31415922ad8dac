package middleware_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/hommiefi/hommiefi-api/internal/middleware"
)

func newMiddlewareApp(cfg middleware.Config) *fiber.App {
	app := fiber.New()
	middleware.Register(app, cfg)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestRegisterRestrictsOriginsWhenConfigured(t *testing.T) {
	app := newMiddlewareApp(middleware.Config{AllowedOrigins: "https://app.hommiefi.com"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://app.hommiefi.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "https://app.hommiefi.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRegisterAllowsSeedAndCorrelationHeaders(t *testing.T) {
	app := newMiddlewareApp(middleware.Config{})

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "https://app.hommiefi.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	require.NoError(t, err)

	allowed := resp.Header.Get("Access-Control-Allow-Headers")
	require.Contains(t, allowed, "X-Seed-Token")
	require.Contains(t, allowed, "X-Correlation-ID")
}

func TestCorrelationIDRegeneratedWhenOversized(t *testing.T) {
	app := newMiddlewareApp(middleware.Config{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Correlation-ID", strings.Repeat("a", 200))
	resp, err := app.Test(req)
	require.NoError(t, err)

	id := resp.Header.Get("X-Correlation-ID")
	require.NotEmpty(t, id)
	require.NotContains(t, id, "aaaa")
	require.LessOrEqual(t, len(id), 64)
}

func TestCorrelationIDEchoesClientValue(t *testing.T) {
	app := newMiddlewareApp(middleware.Config{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Correlation-ID", "hommiefi-trace-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "hommiefi-trace-42", resp.Header.Get("X-Correlation-ID"))
}
