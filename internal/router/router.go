package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hommiefi/hommiefi-api/internal/config"
	"github.com/hommiefi/hommiefi-api/internal/handler"
	"github.com/hommiefi/hommiefi-api/internal/middleware"
	"github.com/hommiefi/hommiefi-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LoopHandler         *handler.LoopHandler
	GigHandler          *handler.GigHandler
	VibeHandler         *handler.VibeHandler
	HavenHandler        *handler.HavenHandler
	ThreadHandler       *handler.ThreadHandler
	ChatHandler         *handler.ChatHandler
	NotificationHandler *handler.NotificationHandler
	SettingsHandler     *handler.SettingsHandler
	ProfileHandler      *handler.ProfileHandler
	HelpOutHandler      *handler.HelpOutHandler
	SeedHandler         *handler.SeedHandler
	RelayHandler        *handler.RelayHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Mixed-visibility features: reads are public, writes carry the JWT
	// middleware per route inside the handler.
	if deps.LoopHandler != nil {
		deps.LoopHandler.Register(app.Group("/api/loop"))
	}
	if deps.GigHandler != nil {
		deps.GigHandler.Register(app.Group("/api/gigs"))
	}
	if deps.ThreadHandler != nil {
		deps.ThreadHandler.Register(app.Group("/api/thread"))
	}
	if deps.HavenHandler != nil {
		deps.HavenHandler.Register(app.Group("/api/haven"))
	}

	// Fully protected features
	if deps.VibeHandler != nil {
		deps.VibeHandler.Register(app.Group("/api/vibe", jwtMiddleware))
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.Register(app.Group("/api/chat", jwtMiddleware))
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(app.Group("/api/notifications", jwtMiddleware))
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(app.Group("/api/settings", jwtMiddleware))
	}
	if deps.HelpOutHandler != nil {
		// Emergency fan-out is expensive and abuse-sensitive; cap it per user.
		deps.HelpOutHandler.Register(app.Group("/api/emergency", jwtMiddleware,
			middleware.RateLimit("emergency", 5, time.Minute)))
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterAuth(app.Group("/api/auth", jwtMiddleware))
		deps.ProfileHandler.RegisterProfile(app.Group("/api/profile", jwtMiddleware))
	}

	// Admin tooling, rate-limited to slow token guessing
	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(app.Group("/api/admin",
			middleware.RateLimit("admin", 3, time.Minute)))
	}

	// Global websocket relay, open to any client
	if deps.RelayHandler != nil {
		deps.RelayHandler.Register(app)
	}
}
