package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// VibeRepository persists availability sessions, one per user.
type VibeRepository interface {
	ListActive(ctx context.Context, excludeUserID string) ([]models.VibeSession, error)
	GetByUser(ctx context.Context, userID string) (models.VibeSession, error)
	Upsert(ctx context.Context, session *models.VibeSession) error
	UpdateByUser(ctx context.Context, userID string, updates map[string]interface{}) (models.VibeSession, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type vibeRepository struct {
	db *gorm.DB
}

// NewVibeRepository constructs a GORM-backed repository.
func NewVibeRepository(db *gorm.DB) VibeRepository {
	return &vibeRepository{db: db}
}

// ListActive returns available sessions that have not expired, oldest first,
// excluding the caller's own session.
func (r *vibeRepository) ListActive(ctx context.Context, excludeUserID string) ([]models.VibeSession, error) {
	query := r.db.WithContext(ctx).Preload("User").
		Where("status = ?", "available").
		Where("available_until IS NULL OR available_until > ?", time.Now())
	if excludeUserID != "" {
		query = query.Where("user_id <> ?", excludeUserID)
	}

	var sessions []models.VibeSession
	if err := query.Order("created_at ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *vibeRepository) GetByUser(ctx context.Context, userID string) (models.VibeSession, error) {
	var session models.VibeSession
	if err := r.db.WithContext(ctx).First(&session, "user_id = ?", userID).Error; err != nil {
		return models.VibeSession{}, err
	}
	return session, nil
}

// Upsert relies on the unique index on user_id: concurrent creates for the
// same user collapse onto one row instead of racing to insert duplicates.
func (r *vibeRepository) Upsert(ctx context.Context, session *models.VibeSession) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "mood", "message", "available_until", "location", "updated_at",
		}),
	}).Create(session).Error
}

func (r *vibeRepository) UpdateByUser(ctx context.Context, userID string, updates map[string]interface{}) (models.VibeSession, error) {
	result := r.db.WithContext(ctx).Model(&models.VibeSession{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return models.VibeSession{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.VibeSession{}, gorm.ErrRecordNotFound
	}
	return r.GetByUser(ctx, userID)
}

func (r *vibeRepository) DeleteByUser(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.VibeSession{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
