package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VibeSession is a time-boxed availability broadcast. The unique index on
// UserID keeps a single current session per user even under concurrent
// create and update calls.
type VibeSession struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	UserID         string     `gorm:"size:64;not null;uniqueIndex" json:"userId"`
	Status         string     `gorm:"size:32;default:available" json:"status"`
	Mood           string     `gorm:"size:32" json:"mood"`
	Message        string     `gorm:"type:text" json:"message"`
	AvailableUntil *time.Time `json:"availableUntil"`
	Location       string     `gorm:"size:255" json:"location"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (v *VibeSession) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
