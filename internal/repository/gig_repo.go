package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// GigFilters narrows gig listings. Empty fields are ignored.
type GigFilters struct {
	Category string
	Status   string
	UserID   string
}

// GigRepository persists gig postings and applications.
type GigRepository interface {
	List(ctx context.Context, filters GigFilters) ([]models.Gig, error)
	Get(ctx context.Context, id string) (models.Gig, error)
	Create(ctx context.Context, gig *models.Gig) error
	Update(ctx context.Context, id, userID string, updates map[string]interface{}) (models.Gig, error)
	Delete(ctx context.Context, id, userID string) error
	CreateApplication(ctx context.Context, application *models.GigApplication) error
	ListApplications(ctx context.Context, gigID string) ([]models.GigApplication, error)
}

type gigRepository struct {
	db *gorm.DB
}

// NewGigRepository constructs a GORM-backed repository.
func NewGigRepository(db *gorm.DB) GigRepository {
	return &gigRepository{db: db}
}

func (r *gigRepository) List(ctx context.Context, filters GigFilters) ([]models.Gig, error) {
	query := r.db.WithContext(ctx).Preload("User")
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}

	var gigs []models.Gig
	if err := query.Order("created_at DESC").Find(&gigs).Error; err != nil {
		return nil, err
	}
	return gigs, nil
}

func (r *gigRepository) Get(ctx context.Context, id string) (models.Gig, error) {
	var gig models.Gig
	if err := r.db.WithContext(ctx).Preload("User").First(&gig, "id = ?", id).Error; err != nil {
		return models.Gig{}, err
	}
	return gig, nil
}

func (r *gigRepository) Create(ctx context.Context, gig *models.Gig) error {
	return r.db.WithContext(ctx).Create(gig).Error
}

func (r *gigRepository) Update(ctx context.Context, id, userID string, updates map[string]interface{}) (models.Gig, error) {
	result := r.db.WithContext(ctx).Model(&models.Gig{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return models.Gig{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Gig{}, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *gigRepository) Delete(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Gig{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateApplication verifies the gig exists before inserting, so an
// application can never point at a missing posting.
func (r *gigRepository) CreateApplication(ctx context.Context, application *models.GigApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Gig{}).Where("id = ?", application.GigID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(application).Error
	})
}

func (r *gigRepository) ListApplications(ctx context.Context, gigID string) ([]models.GigApplication, error) {
	var applications []models.GigApplication
	if err := r.db.WithContext(ctx).Preload("User").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
