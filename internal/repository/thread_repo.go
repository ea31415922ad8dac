package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// ThreadRepository persists the community feed. The like and comment counters
// on posts change only inside the same transaction as the rows they count.
type ThreadRepository interface {
	ListPosts(ctx context.Context, category string) ([]models.ThreadPost, error)
	GetPost(ctx context.Context, id string) (models.ThreadPost, error)
	CreatePost(ctx context.Context, post *models.ThreadPost) error
	DeletePost(ctx context.Context, id, userID string) error
	Like(ctx context.Context, postID, userID string) (models.ThreadPost, error)
	Unlike(ctx context.Context, postID, userID string) (models.ThreadPost, error)
	CreateComment(ctx context.Context, comment *models.ThreadComment) error
	ListComments(ctx context.Context, postID string) ([]models.ThreadComment, error)
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository constructs a GORM-backed repository.
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// ListPosts puts sticky posts first, then newest first, optionally filtered
// to one category.
func (r *threadRepository) ListPosts(ctx context.Context, category string) ([]models.ThreadPost, error) {
	query := r.db.WithContext(ctx).Preload("User")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var posts []models.ThreadPost
	if err := query.Order("is_sticky DESC, created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *threadRepository) GetPost(ctx context.Context, id string) (models.ThreadPost, error) {
	var post models.ThreadPost
	if err := r.db.WithContext(ctx).Preload("User").First(&post, "id = ?", id).Error; err != nil {
		return models.ThreadPost{}, err
	}
	return post, nil
}

func (r *threadRepository) CreatePost(ctx context.Context, post *models.ThreadPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *threadRepository) DeletePost(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ThreadPost{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.ThreadPostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&models.ThreadComment{}).Error
	})
}

// Like is idempotent. The like row insert ignores conflicts, and the counter
// increments only when the insert actually created a row, so repeat likes
// from the same user leave the count unchanged.
func (r *threadRepository) Like(ctx context.Context, postID, userID string) (models.ThreadPost, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ThreadPost{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ThreadPostLike{UserID: userID, PostID: postID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.ThreadPost{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).
			Error
	})
	if err != nil {
		return models.ThreadPost{}, err
	}
	return r.GetPost(ctx, postID)
}

// Unlike decrements only when a like row was actually deleted.
func (r *threadRepository) Unlike(ctx context.Context, postID, userID string) (models.ThreadPost, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.ThreadPostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.ThreadPost{}).
			Where("id = ? AND likes_count > 0", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).
			Error
	})
	if err != nil {
		return models.ThreadPost{}, err
	}
	return r.GetPost(ctx, postID)
}

func (r *threadRepository) CreateComment(ctx context.Context, comment *models.ThreadComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ThreadPost{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Model(&models.ThreadPost{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).
			Error
	})
}

func (r *threadRepository) ListComments(ctx context.Context, postID string) ([]models.ThreadComment, error) {
	var comments []models.ThreadComment
	if err := r.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
