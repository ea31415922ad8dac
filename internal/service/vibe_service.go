package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

const vibeCacheKey = "hommiefi:vibe:active"

// VibeService exposes availability-broadcast use-cases. The active list is
// cached in Redis for a short TTL and invalidated on every write; the
// caller's own session and any session whose availability window lapsed
// inside the cache TTL are filtered out after the cache read, so one cached
// list serves every user without ever surfacing an expired session.
type VibeService interface {
	ListActive(ctx context.Context, callerID string) ([]models.VibeSession, error)
	GetCurrent(ctx context.Context, userID string) (models.VibeSession, error)
	Save(ctx context.Context, userID string, payload dto.VibeSessionRequest) (models.VibeSession, error)
	Update(ctx context.Context, userID string, payload dto.VibeSessionRequest) (models.VibeSession, error)
	End(ctx context.Context, userID string) error
}

type vibeService struct {
	repo      repository.VibeRepository
	redis     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewVibeService constructs a vibe service. Redis is optional; without it
// every read goes to the database.
func NewVibeService(repo repository.VibeRepository, redisClient *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) VibeService {
	return &vibeService{
		repo:      repo,
		redis:     redisClient,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger.With().Str("component", "vibe_service").Logger(),
	}
}

func (s *vibeService) ListActive(ctx context.Context, callerID string) ([]models.VibeSession, error) {
	now := time.Now()
	if cached := s.fetchCached(ctx); cached != nil {
		return visibleSessions(cached, callerID, now), nil
	}

	sessions, err := s.repo.ListActive(ctx, "")
	if err != nil {
		return nil, err
	}

	s.cache(ctx, sessions)
	return visibleSessions(sessions, callerID, now), nil
}

func (s *vibeService) GetCurrent(ctx context.Context, userID string) (models.VibeSession, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Save creates or replaces the caller's session. The upsert keeps the
// one-session-per-user rule intact even when two saves race.
func (s *vibeService) Save(ctx context.Context, userID string, payload dto.VibeSessionRequest) (models.VibeSession, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.VibeSession{}, err
	}

	session := payload.ToModel(userID)
	if err := s.repo.Upsert(ctx, &session); err != nil {
		return models.VibeSession{}, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("user_id", userID).Str("status", session.Status).Msg("vibe session saved")

	return s.repo.GetByUser(ctx, userID)
}

func (s *vibeService) Update(ctx context.Context, userID string, payload dto.VibeSessionRequest) (models.VibeSession, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.VibeSession{}, err
	}

	updates := payload.Updates()
	if len(updates) == 0 {
		return s.repo.GetByUser(ctx, userID)
	}

	session, err := s.repo.UpdateByUser(ctx, userID, updates)
	if err != nil {
		return models.VibeSession{}, err
	}
	s.invalidate(ctx)
	return session, nil
}

func (s *vibeService) End(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *vibeService) fetchCached(ctx context.Context) []models.VibeSession {
	if s.redis == nil {
		return nil
	}

	result, err := s.redis.Get(ctx, vibeCacheKey).Result()
	if err != nil {
		return nil
	}

	var sessions []models.VibeSession
	if err := json.Unmarshal([]byte(result), &sessions); err != nil {
		s.logger.Warn().Err(err).Msg("failed to unmarshal cached vibe sessions")
		return nil
	}
	return sessions
}

func (s *vibeService) cache(ctx context.Context, sessions []models.VibeSession) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(sessions)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal vibe sessions for cache")
		return
	}
	if err := s.redis.Set(ctx, vibeCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache vibe sessions")
	}
}

func (s *vibeService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, vibeCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate vibe cache")
	}
}

// visibleSessions drops the caller's own session and any session whose
// available_until passed after the list was cached. The store never returns
// expired rows, but a cached list outlives its snapshot by up to the TTL.
func visibleSessions(sessions []models.VibeSession, userID string, now time.Time) []models.VibeSession {
	filtered := make([]models.VibeSession, 0, len(sessions))
	for _, session := range sessions {
		if session.UserID == userID {
			continue
		}
		if session.AvailableUntil != nil && !session.AvailableUntil.After(now) {
			continue
		}
		filtered = append(filtered, session)
	}
	return filtered
}
