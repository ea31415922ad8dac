package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ThreadPost is a community feed entry. LikesCount and CommentsCount are
// denormalized counters kept in step with the like and comment rows.
type ThreadPost struct {
	ID            string                      `gorm:"primaryKey;size:64" json:"id"`
	UserID        string                      `gorm:"size:64;not null;index" json:"userId"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Content       string                      `gorm:"type:text" json:"content"`
	Category      string                      `gorm:"size:64;not null;index" json:"category"`
	ImageURLs     datatypes.JSONSlice[string] `gorm:"type:json" json:"imageUrls"`
	LikesCount    int                         `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount int                         `gorm:"not null;default:0" json:"commentsCount"`
	IsSticky      bool                        `gorm:"not null;default:false" json:"isSticky"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
	User          *User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (p *ThreadPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ThreadPostLike records one like per (user, post) pair.
type ThreadPostLike struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"userId"`
	PostID    string    `gorm:"primaryKey;size:64" json:"postId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// ThreadComment is a comment on a thread post, optionally nested below a
// parent comment.
type ThreadComment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	PostID     string    `gorm:"size:64;not null;index" json:"postId"`
	UserID     string    `gorm:"size:64;not null;index" json:"userId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ParentID   string    `gorm:"size:64" json:"parentId"`
	LikesCount int       `gorm:"not null;default:0" json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (c *ThreadComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
