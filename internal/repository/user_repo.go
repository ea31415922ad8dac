package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// UserRepository persists user identity records.
type UserRepository interface {
	Get(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (models.User, error)
	ListNearby(ctx context.Context, neighborhood, city, excludeUserID string) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Upsert inserts the user or refreshes the mutable profile columns when a row
// with the same id already exists. Used on login and by the seeder.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url", "updated_at",
		}),
	}).Create(user).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

// ListNearby returns users sharing the given neighborhood, widening to the
// city when the neighborhood is empty. The excluded id keeps callers from
// addressing themselves.
func (r *userRepository) ListNearby(ctx context.Context, neighborhood, city, excludeUserID string) ([]models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	switch {
	case neighborhood != "":
		query = query.Where("neighborhood = ?", neighborhood)
	case city != "":
		query = query.Where("city = ?", city)
	default:
		return []models.User{}, nil
	}
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}

	var users []models.User
	if err := query.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
