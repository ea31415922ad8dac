package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// NotificationPublisher exposes the subset of the notification service other
// features need to fan events in.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification models.Notification) error
	PublishBatch(ctx context.Context, notifications []models.Notification) error
}

// NotificationService exposes per-user notification use-cases.
type NotificationService interface {
	NotificationPublisher
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	relay  RelayService
	logger zerolog.Logger
}

// NewNotificationService constructs a notification service. When a relay is
// attached, stored notifications are also pushed to connected clients.
func NewNotificationService(repo repository.NotificationRepository, relay RelayService, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		relay:  relay,
		logger: logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.List(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) Publish(ctx context.Context, notification models.Notification) error {
	if err := s.repo.Create(ctx, &notification); err != nil {
		return err
	}
	s.push(ctx, notification)
	return nil
}

func (s *notificationService) PublishBatch(ctx context.Context, notifications []models.Notification) error {
	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return err
	}
	for _, notification := range notifications {
		s.push(ctx, notification)
	}
	return nil
}

func (s *notificationService) push(ctx context.Context, notification models.Notification) {
	if s.relay == nil {
		return
	}
	s.relay.Push(ctx, map[string]interface{}{
		"type":         "notification",
		"notification": notification,
	})
}
