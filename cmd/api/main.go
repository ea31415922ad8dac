package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/config"
	"github.com/hommiefi/hommiefi-api/internal/database"
	"github.com/hommiefi/hommiefi-api/internal/handler"
	"github.com/hommiefi/hommiefi-api/internal/middleware"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
	"github.com/hommiefi/hommiefi-api/internal/router"
	"github.com/hommiefi/hommiefi-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.LoopItem{},
		&models.Gig{},
		&models.GigApplication{},
		&models.VibeSession{},
		&models.HavenGroup{},
		&models.HavenMembership{},
		&models.ThreadPost{},
		&models.ThreadPostLike{},
		&models.ThreadComment{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSUrl)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, relay runs single-node")
	} else if natsConn != nil {
		defer natsConn.Drain()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	loopRepo := repository.NewLoopRepository(db)
	gigRepo := repository.NewGigRepository(db)
	vibeRepo := repository.NewVibeRepository(db)
	havenRepo := repository.NewHavenRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	relayService := service.NewRelayService(redisClient, "hommiefi", natsConn, logger)
	notificationService := service.NewNotificationService(notificationRepo, relayService, logger)
	loopService := service.NewLoopService(loopRepo, validate, logger)
	gigService := service.NewGigService(gigRepo, notificationService, validate, logger)
	vibeService := service.NewVibeService(vibeRepo, redisClient, cfg.VibeCacheTTL, validate, logger)
	havenService := service.NewHavenService(havenRepo, validate, logger)
	threadService := service.NewThreadService(threadRepo, notificationService, validate, logger)
	chatService := service.NewChatService(chatRepo, notificationService, relayService, validate, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	profileService := service.NewProfileService(userRepo, validate, logger)
	helpOutService := service.NewHelpOutService(userRepo, notificationService, relayService, validate, logger)
	seedService := service.NewSeedService(userRepo, loopRepo, gigRepo, threadRepo, vibeRepo, havenRepo, chatRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	jwtMiddleware := middleware.JWTProtected(cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowedOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		LoopHandler:         handler.NewLoopHandler(loopService, validate, logger, jwtMiddleware),
		GigHandler:          handler.NewGigHandler(gigService, validate, logger, jwtMiddleware),
		VibeHandler:         handler.NewVibeHandler(vibeService, validate, logger),
		HavenHandler:        handler.NewHavenHandler(havenService, validate, logger, jwtMiddleware),
		ThreadHandler:       handler.NewThreadHandler(threadService, validate, logger, jwtMiddleware),
		ChatHandler:         handler.NewChatHandler(chatService, validate, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		SettingsHandler:     handler.NewSettingsHandler(settingsService, logger),
		ProfileHandler:      handler.NewProfileHandler(profileService, validate, logger),
		HelpOutHandler:      handler.NewHelpOutHandler(helpOutService, validate, logger),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		RelayHandler:        handler.NewRelayHandler(relayService, logger),
		JWTMiddleware:       jwtMiddleware,
	})

	relayCtx, stopRelay := context.WithCancel(context.Background())
	defer stopRelay()
	relayService.Start(relayCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
