package dto

import (
	"gorm.io/datatypes"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// ThreadPostCreateRequest mirrors the insertable fields of a feed post.
// Counters are server-owned and never accepted from the client.
type ThreadPostCreateRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=255"`
	Content   string   `json:"content" validate:"omitempty,max=10000"`
	Category  string   `json:"category" validate:"required,oneof=announcement tip lost_found recommendation general"`
	ImageURLs []string `json:"imageUrls" validate:"omitempty,dive,url"`
	IsSticky  bool     `json:"isSticky"`
}

// ToModel builds the persistence model owned by the given user.
func (r ThreadPostCreateRequest) ToModel(userID string) models.ThreadPost {
	return models.ThreadPost{
		UserID:    userID,
		Title:     r.Title,
		Content:   r.Content,
		Category:  r.Category,
		ImageURLs: datatypes.NewJSONSlice(r.ImageURLs),
		IsSticky:  r.IsSticky,
	}
}

// ThreadCommentCreateRequest adds a comment below a post, optionally nested
// under a parent comment.
type ThreadCommentCreateRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=5000"`
	ParentID string `json:"parentId" validate:"omitempty,max=64"`
}

// ToModel builds the comment row for the given post and author.
func (r ThreadCommentCreateRequest) ToModel(postID, userID string) models.ThreadComment {
	return models.ThreadComment{
		PostID:   postID,
		UserID:   userID,
		Content:  r.Content,
		ParentID: r.ParentID,
	}
}
