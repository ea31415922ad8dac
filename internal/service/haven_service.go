package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// HavenService exposes support-group use-cases.
type HavenService interface {
	ListGroups(ctx context.Context) ([]models.HavenGroup, error)
	GetGroup(ctx context.Context, id string) (models.HavenGroup, error)
	CreateGroup(ctx context.Context, userID string, payload dto.HavenGroupCreateRequest) (models.HavenGroup, error)
	Join(ctx context.Context, groupID, userID string) (models.HavenMembership, error)
	Leave(ctx context.Context, groupID, userID string) error
	ListUserGroups(ctx context.Context, userID string) ([]models.HavenGroup, error)
}

type havenService struct {
	repo      repository.HavenRepository
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewHavenService constructs a haven service.
func NewHavenService(repo repository.HavenRepository, validate *validator.Validate, logger zerolog.Logger) HavenService {
	return &havenService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "haven_service").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *havenService) ListGroups(ctx context.Context) ([]models.HavenGroup, error) {
	return s.repo.ListGroups(ctx)
}

func (s *havenService) GetGroup(ctx context.Context, id string) (models.HavenGroup, error) {
	return s.repo.GetGroup(ctx, id)
}

// CreateGroup stores the group and enrolls the creator as its first member.
func (s *havenService) CreateGroup(ctx context.Context, userID string, payload dto.HavenGroupCreateRequest) (models.HavenGroup, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.HavenGroup{}, err
	}

	group := payload.ToModel()
	group.Name = strings.TrimSpace(s.sanitizer.Sanitize(group.Name))
	group.Description = strings.TrimSpace(s.sanitizer.Sanitize(group.Description))
	if group.Name == "" {
		return models.HavenGroup{}, errors.New("group name empty after sanitization")
	}

	if err := s.repo.CreateGroup(ctx, &group); err != nil {
		return models.HavenGroup{}, err
	}

	if _, err := s.repo.Join(ctx, group.ID, userID); err != nil {
		s.logger.Warn().Err(err).Str("group_id", group.ID).Msg("failed to enroll group creator")
	}

	s.logger.Info().Str("group_id", group.ID).Str("user_id", userID).Str("age_group", group.AgeGroup).Msg("haven group created")

	return s.repo.GetGroup(ctx, group.ID)
}

func (s *havenService) Join(ctx context.Context, groupID, userID string) (models.HavenMembership, error) {
	return s.repo.Join(ctx, groupID, userID)
}

func (s *havenService) Leave(ctx context.Context, groupID, userID string) error {
	return s.repo.Leave(ctx, groupID, userID)
}

func (s *havenService) ListUserGroups(ctx context.Context, userID string) ([]models.HavenGroup, error) {
	return s.repo.ListUserGroups(ctx, userID)
}
