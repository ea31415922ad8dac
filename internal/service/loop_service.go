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

// LoopService exposes item-sharing use-cases.
type LoopService interface {
	List(ctx context.Context, filters repository.LoopFilters) ([]models.LoopItem, error)
	Get(ctx context.Context, id string) (models.LoopItem, error)
	Create(ctx context.Context, userID string, payload dto.LoopItemCreateRequest) (models.LoopItem, error)
	Update(ctx context.Context, id, userID string, payload dto.LoopItemUpdateRequest) (models.LoopItem, error)
	Delete(ctx context.Context, id, userID string) error
}

type loopService struct {
	repo      repository.LoopRepository
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewLoopService constructs a loop service.
func NewLoopService(repo repository.LoopRepository, validate *validator.Validate, logger zerolog.Logger) LoopService {
	return &loopService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "loop_service").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *loopService) List(ctx context.Context, filters repository.LoopFilters) ([]models.LoopItem, error) {
	return s.repo.List(ctx, filters)
}

func (s *loopService) Get(ctx context.Context, id string) (models.LoopItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *loopService) Create(ctx context.Context, userID string, payload dto.LoopItemCreateRequest) (models.LoopItem, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.LoopItem{}, err
	}

	item := payload.ToModel(userID)
	item.Title = strings.TrimSpace(s.sanitizer.Sanitize(item.Title))
	item.Description = strings.TrimSpace(s.sanitizer.Sanitize(item.Description))
	if item.Title == "" {
		return models.LoopItem{}, errors.New("item title empty after sanitization")
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return models.LoopItem{}, err
	}

	s.logger.Info().Str("item_id", item.ID).Str("user_id", userID).Msg("loop item created")

	return item, nil
}

func (s *loopService) Update(ctx context.Context, id, userID string, payload dto.LoopItemUpdateRequest) (models.LoopItem, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.LoopItem{}, err
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

func (s *loopService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
