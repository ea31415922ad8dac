package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// LoopFilters narrows item listings. Empty fields are ignored; set fields
// combine conjunctively.
type LoopFilters struct {
	Category string
	Type     string
	Status   string
	UserID   string
}

// LoopRepository persists shared-economy item listings.
type LoopRepository interface {
	List(ctx context.Context, filters LoopFilters) ([]models.LoopItem, error)
	Get(ctx context.Context, id string) (models.LoopItem, error)
	Create(ctx context.Context, item *models.LoopItem) error
	Update(ctx context.Context, id, userID string, updates map[string]interface{}) (models.LoopItem, error)
	Delete(ctx context.Context, id, userID string) error
}

type loopRepository struct {
	db *gorm.DB
}

// NewLoopRepository constructs a GORM-backed repository.
func NewLoopRepository(db *gorm.DB) LoopRepository {
	return &loopRepository{db: db}
}

func (r *loopRepository) List(ctx context.Context, filters LoopFilters) ([]models.LoopItem, error) {
	query := r.db.WithContext(ctx).Preload("User")
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}

	var items []models.LoopItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *loopRepository) Get(ctx context.Context, id string) (models.LoopItem, error) {
	var item models.LoopItem
	if err := r.db.WithContext(ctx).Preload("User").First(&item, "id = ?", id).Error; err != nil {
		return models.LoopItem{}, err
	}
	return item, nil
}

func (r *loopRepository) Create(ctx context.Context, item *models.LoopItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update applies a partial edit scoped to the owner. A zero row count means
// the item does not exist or belongs to someone else; both surface as not
// found.
func (r *loopRepository) Update(ctx context.Context, id, userID string, updates map[string]interface{}) (models.LoopItem, error) {
	result := r.db.WithContext(ctx).Model(&models.LoopItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return models.LoopItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.LoopItem{}, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *loopRepository) Delete(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.LoopItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
