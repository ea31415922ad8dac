package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HavenGroup is a private support community scoped to an age group. The
// MemberCount column is denormalized and must only change together with the
// membership rows it summarizes.
type HavenGroup struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	AgeGroup    string    `gorm:"size:32;not null" json:"ageGroup"`
	IsPrivate   bool      `gorm:"not null;default:true" json:"isPrivate"`
	MemberCount int       `gorm:"not null;default:0" json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (g *HavenGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// HavenMembership joins users to haven groups. The composite primary key
// allows at most one membership row per (user, group) pair.
type HavenMembership struct {
	UserID   string    `gorm:"primaryKey;size:64" json:"userId"`
	GroupID  string    `gorm:"primaryKey;size:64" json:"groupId"`
	Role     string    `gorm:"size:32;default:member" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}
