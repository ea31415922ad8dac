package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// HavenRepository persists support groups and their memberships. MemberCount
// moves only inside the same transaction as the membership row, and only when
// that row actually changed.
type HavenRepository interface {
	ListGroups(ctx context.Context) ([]models.HavenGroup, error)
	GetGroup(ctx context.Context, id string) (models.HavenGroup, error)
	CreateGroup(ctx context.Context, group *models.HavenGroup) error
	Join(ctx context.Context, groupID, userID string) (models.HavenMembership, error)
	Leave(ctx context.Context, groupID, userID string) error
	ListUserGroups(ctx context.Context, userID string) ([]models.HavenGroup, error)
}

type havenRepository struct {
	db *gorm.DB
}

// NewHavenRepository constructs a GORM-backed repository.
func NewHavenRepository(db *gorm.DB) HavenRepository {
	return &havenRepository{db: db}
}

func (r *havenRepository) ListGroups(ctx context.Context) ([]models.HavenGroup, error) {
	var groups []models.HavenGroup
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *havenRepository) GetGroup(ctx context.Context, id string) (models.HavenGroup, error) {
	var group models.HavenGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return models.HavenGroup{}, err
	}
	return group, nil
}

func (r *havenRepository) CreateGroup(ctx context.Context, group *models.HavenGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// Join is idempotent: a repeat join returns the existing membership and does
// not touch the counter. The conflict-ignore insert makes "did this row
// exist" observable through RowsAffected.
func (r *havenRepository) Join(ctx context.Context, groupID, userID string) (models.HavenMembership, error) {
	membership := models.HavenMembership{
		UserID:  userID,
		GroupID: groupID,
		Role:    "member",
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.HavenGroup{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return tx.First(&membership, "user_id = ? AND group_id = ?", userID, groupID).Error
		}

		return tx.Model(&models.HavenGroup{}).
			Where("id = ?", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).
			Error
	})
	if err != nil {
		return models.HavenMembership{}, err
	}
	return membership, nil
}

// Leave decrements the counter only when a membership row was actually
// removed, so leaving twice cannot drive the count negative.
func (r *havenRepository) Leave(ctx context.Context, groupID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND group_id = ?", userID, groupID).
			Delete(&models.HavenMembership{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.HavenGroup{}).
			Where("id = ? AND member_count > 0", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).
			Error
	})
}

func (r *havenRepository) ListUserGroups(ctx context.Context, userID string) ([]models.HavenGroup, error) {
	var groups []models.HavenGroup
	if err := r.db.WithContext(ctx).
		Joins("JOIN haven_memberships ON haven_memberships.group_id = haven_groups.id").
		Where("haven_memberships.user_id = ?", userID).
		Order("haven_memberships.joined_at DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
