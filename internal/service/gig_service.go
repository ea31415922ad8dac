package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// ErrGigPricing indicates a gig payload carried both an hourly rate and a
// fixed price. A gig is priced one way or the other, never both.
var ErrGigPricing = errors.New("gig cannot have both hourly rate and fixed price")

// GigService exposes micro-job use-cases.
type GigService interface {
	List(ctx context.Context, filters repository.GigFilters) ([]models.Gig, error)
	Get(ctx context.Context, id string) (models.Gig, error)
	Create(ctx context.Context, userID string, payload dto.GigCreateRequest) (models.Gig, error)
	Update(ctx context.Context, id, userID string, payload dto.GigUpdateRequest) (models.Gig, error)
	Delete(ctx context.Context, id, userID string) error
	Apply(ctx context.Context, gigID, userID string, payload dto.GigApplicationRequest) (models.GigApplication, error)
	ListApplications(ctx context.Context, gigID, callerID string) ([]models.GigApplication, error)
}

type gigService struct {
	repo          repository.GigRepository
	notifications NotificationPublisher
	validator     *validator.Validate
	logger        zerolog.Logger
	sanitizer     *bluemonday.Policy
}

// NewGigService constructs a gig service.
func NewGigService(repo repository.GigRepository, notifications NotificationPublisher, validate *validator.Validate, logger zerolog.Logger) GigService {
	return &gigService{
		repo:          repo,
		notifications: notifications,
		validator:     validate,
		logger:        logger.With().Str("component", "gig_service").Logger(),
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *gigService) List(ctx context.Context, filters repository.GigFilters) ([]models.Gig, error) {
	return s.repo.List(ctx, filters)
}

func (s *gigService) Get(ctx context.Context, id string) (models.Gig, error) {
	return s.repo.Get(ctx, id)
}

func (s *gigService) Create(ctx context.Context, userID string, payload dto.GigCreateRequest) (models.Gig, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Gig{}, err
	}
	if payload.HourlyRate != nil && payload.FixedPrice != nil {
		return models.Gig{}, ErrGigPricing
	}

	gig := payload.ToModel(userID)
	gig.Title = strings.TrimSpace(s.sanitizer.Sanitize(gig.Title))
	gig.Description = strings.TrimSpace(s.sanitizer.Sanitize(gig.Description))
	if gig.Title == "" {
		return models.Gig{}, errors.New("gig title empty after sanitization")
	}

	if err := s.repo.Create(ctx, &gig); err != nil {
		return models.Gig{}, err
	}

	s.logger.Info().Str("gig_id", gig.ID).Str("user_id", userID).Bool("urgent", gig.IsUrgent).Msg("gig created")

	return gig, nil
}

func (s *gigService) Update(ctx context.Context, id, userID string, payload dto.GigUpdateRequest) (models.Gig, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Gig{}, err
	}
	if payload.HourlyRate != nil && payload.FixedPrice != nil {
		return models.Gig{}, ErrGigPricing
	}

	updates := payload.Updates()
	if title, ok := updates["title"].(string); ok {
		updates["title"] = strings.TrimSpace(s.sanitizer.Sanitize(title))
	}
	if description, ok := updates["description"].(string); ok {
		updates["description"] = strings.TrimSpace(s.sanitizer.Sanitize(description))
	}

	return s.repo.Update(ctx, id, userID, updates)
}

func (s *gigService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// Apply records a bid and notifies the gig owner.
func (s *gigService) Apply(ctx context.Context, gigID, userID string, payload dto.GigApplicationRequest) (models.GigApplication, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.GigApplication{}, err
	}

	gig, err := s.repo.Get(ctx, gigID)
	if err != nil {
		return models.GigApplication{}, err
	}

	application := payload.ToModel(gigID, userID)
	application.Message = strings.TrimSpace(s.sanitizer.Sanitize(application.Message))

	if err := s.repo.CreateApplication(ctx, &application); err != nil {
		return models.GigApplication{}, err
	}

	if s.notifications != nil && gig.UserID != userID {
		notification := models.Notification{
			UserID:   gig.UserID,
			Title:    "New gig application",
			Message:  "Someone applied to \"" + gig.Title + "\"",
			Type:     "gig_application",
			EntityID: gig.ID,
		}
		if err := s.notifications.Publish(ctx, notification); err != nil {
			s.logger.Warn().Err(err).Str("gig_id", gig.ID).Msg("failed to notify gig owner")
		}
	}

	return application, nil
}

// ListApplications is restricted to the gig owner. Anyone else sees the same
// not-found result a missing gig would produce.
func (s *gigService) ListApplications(ctx context.Context, gigID, callerID string) ([]models.GigApplication, error) {
	gig, err := s.repo.Get(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.UserID != callerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.repo.ListApplications(ctx, gigID)
}
