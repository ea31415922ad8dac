package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// SettingsRepository persists the per-user preferences row.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (models.UserSettings, error)
	Upsert(ctx context.Context, settings *models.UserSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs a GORM-backed repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error; err != nil {
		return models.UserSettings{}, err
	}
	return settings, nil
}

// Upsert replaces the whole row. Settings saves are whole-object by contract,
// so last write wins across all columns.
func (r *settingsRepository) Upsert(ctx context.Context, settings *models.UserSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(settings).Error
}
