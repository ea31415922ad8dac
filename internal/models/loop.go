package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoopItem is an item offered, requested or proposed for swap between neighbors.
type LoopItem struct {
	ID             string                       `gorm:"primaryKey;size:64" json:"id"`
	UserID         string                       `gorm:"size:64;not null;index" json:"userId"`
	Title          string                       `gorm:"size:255;not null" json:"title"`
	Description    string                       `gorm:"type:text" json:"description"`
	Category       string                       `gorm:"size:64;not null;index" json:"category"`
	Type           string                       `gorm:"size:32;not null" json:"type"`
	Status         string                       `gorm:"size:32;default:available" json:"status"`
	Price          *float64                     `gorm:"type:decimal(10,2)" json:"price"`
	ImageURLs      datatypes.JSONSlice[string]  `gorm:"type:json" json:"imageUrls"`
	Location       string                       `gorm:"size:255" json:"location"`
	AvailableFrom  *time.Time                   `json:"availableFrom"`
	AvailableUntil *time.Time                   `json:"availableUntil"`
	CreatedAt      time.Time                    `json:"createdAt"`
	UpdatedAt      time.Time                    `json:"updatedAt"`
	User           *User                        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (l *LoopItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
