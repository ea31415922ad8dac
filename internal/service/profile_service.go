package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// ProfileService exposes user-identity use-cases.
type ProfileService interface {
	Get(ctx context.Context, userID string) (models.User, error)
	Update(ctx context.Context, userID string, payload dto.ProfileUpdateRequest) (models.User, error)
}

type profileService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewProfileService constructs a profile service.
func NewProfileService(repo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (models.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, userID string, payload dto.ProfileUpdateRequest) (models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	updates := payload.Updates()
	if bio, ok := updates["bio"].(string); ok {
		updates["bio"] = strings.TrimSpace(s.sanitizer.Sanitize(bio))
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}

	return s.repo.UpdateProfile(ctx, userID, updates)
}
