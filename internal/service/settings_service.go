package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// SettingsService exposes user-preference use-cases. A user with no stored
// row reads back the defaults; saves replace the whole row.
type SettingsService interface {
	Get(ctx context.Context, userID string) (models.UserSettings, error)
	Save(ctx context.Context, userID string, settings models.UserSettings) (models.UserSettings, error)
}

type settingsService struct {
	repo   repository.SettingsRepository
	logger zerolog.Logger
}

// NewSettingsService constructs a settings service.
func NewSettingsService(repo repository.SettingsRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		logger: logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context, userID string) (models.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(userID), nil
	}
	if err != nil {
		return models.UserSettings{}, err
	}
	return settings, nil
}

func (s *settingsService) Save(ctx context.Context, userID string, settings models.UserSettings) (models.UserSettings, error) {
	settings.UserID = userID
	if err := s.repo.Upsert(ctx, &settings); err != nil {
		return models.UserSettings{}, err
	}
	s.logger.Info().Str("user_id", userID).Msg("settings saved")
	return s.repo.Get(ctx, userID)
}

// defaultSettings mirrors the column defaults so a fresh user sees the same
// values a stored-then-read row would have.
func defaultSettings(userID string) models.UserSettings {
	return models.UserSettings{
		UserID:                            userID,
		ProfileVisibility:                 "verified_neighbors",
		LocationSharing:                   true,
		OnlineStatus:                      true,
		ShowTrustScore:                    true,
		AllowDirectMessages:               true,
		PushNotifications:                 true,
		EmailNotifications:                true,
		NewMessages:                       true,
		EmergencyAlerts:                   true,
		GigNotifications:                  true,
		LoopNotifications:                 true,
		VibeNotifications:                 true,
		HavenNotifications:                true,
		ThreadNotifications:               true,
		NearbyActivityNotifications:       true,
		EmailFrequency:                    "daily",
		QuietHoursStart:                   "22:00",
		QuietHoursEnd:                     "07:00",
		Theme:                             "light",
		Language:                          "english",
		FontSize:                          "medium",
		SearchRadius:                      5,
		AutoLocationUpdates:               true,
		ShowDistanceInResults:             true,
		PreferLocalResults:                true,
		MapStyle:                          "standard",
		VerificationBadgeVisible:          true,
		LoginAlerts:                       true,
		SessionTimeout:                    30,
		DeviceTrustEnabled:                true,
		AutoMatchmaking:                   true,
		SkillsVisibility:                  "public",
		InterestsVisibility:               "public",
		AllowGigRecommendations:           true,
		AllowVibeMatching:                 true,
		CommunityLeaderboardParticipation: true,
		DataRetention:                     "2years",
		BackupEnabled:                     true,
		SyncAcrossDevices:                 true,
	}
}
