package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// EmergencyResult summarizes a HelpOut fan-out.
type EmergencyResult struct {
	Notified int `json:"notified"`
}

// HelpOutService broadcasts emergency requests to nearby neighbors. Targets
// are users in the requester's neighborhood, widening to the city when the
// requester has no neighborhood on file. The requester also receives a copy,
// confirming the request went out.
type HelpOutService interface {
	RequestHelp(ctx context.Context, userID string, payload dto.EmergencyRequest) (EmergencyResult, error)
}

type helpOutService struct {
	users         repository.UserRepository
	notifications NotificationPublisher
	relay         RelayService
	validator     *validator.Validate
	logger        zerolog.Logger
	tracer        trace.Tracer
	sanitizer     *bluemonday.Policy
}

// NewHelpOutService constructs a HelpOut service.
func NewHelpOutService(users repository.UserRepository, notifications NotificationPublisher, relay RelayService, validate *validator.Validate, logger zerolog.Logger) HelpOutService {
	return &helpOutService{
		users:         users,
		notifications: notifications,
		relay:         relay,
		validator:     validate,
		logger:        logger.With().Str("component", "helpout_service").Logger(),
		tracer:        otel.Tracer("github.com/hommiefi/hommiefi-api/internal/service/helpout"),
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *helpOutService) RequestHelp(ctx context.Context, userID string, payload dto.EmergencyRequest) (EmergencyResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return EmergencyResult{}, err
	}

	requester, err := s.users.Get(ctx, userID)
	if err != nil {
		return EmergencyResult{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "helpout.request", trace.WithAttributes(
		attribute.String("helpout.user_id", userID),
		attribute.String("helpout.urgency", payload.Urgency),
	))
	defer span.End()

	title := strings.TrimSpace(s.sanitizer.Sanitize(payload.Title))
	description := strings.TrimSpace(s.sanitizer.Sanitize(payload.Description))
	location := strings.TrimSpace(s.sanitizer.Sanitize(payload.Location))

	neighbors, err := s.users.ListNearby(spanCtx, requester.Neighborhood, requester.City, userID)
	if err != nil {
		span.RecordError(err)
		return EmergencyResult{}, err
	}

	notifications := make([]models.Notification, 0, len(neighbors)+1)
	for _, neighbor := range neighbors {
		notifications = append(notifications, models.Notification{
			UserID:   neighbor.ID,
			Title:    "Neighbor needs help: " + title,
			Message:  description,
			Type:     "emergency",
			EntityID: location,
		})
	}
	notifications = append(notifications, models.Notification{
		UserID:   userID,
		Title:    "Your help request was sent",
		Message:  title,
		Type:     "emergency_sent",
		EntityID: location,
	})

	if err := s.notifications.PublishBatch(spanCtx, notifications); err != nil {
		span.RecordError(err)
		return EmergencyResult{}, err
	}

	if s.relay != nil {
		s.relay.Push(spanCtx, map[string]interface{}{
			"type":        "emergency",
			"userId":      userID,
			"title":       title,
			"description": description,
			"urgency":     payload.Urgency,
			"location":    location,
		})
	}

	s.logger.Info().Str("user_id", userID).Str("urgency", payload.Urgency).Int("notified", len(neighbors)).Msg("emergency request dispatched")

	return EmergencyResult{Notified: len(neighbors)}, nil
}
