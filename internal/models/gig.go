package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gig is a paid or unpaid local task posting.
type Gig struct {
	ID             string                      `gorm:"primaryKey;size:64" json:"id"`
	UserID         string                      `gorm:"size:64;not null;index" json:"userId"`
	Title          string                      `gorm:"size:255;not null" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	Category       string                      `gorm:"size:64;not null;index" json:"category"`
	HourlyRate     *float64                    `gorm:"type:decimal(10,2)" json:"hourlyRate"`
	FixedPrice     *float64                    `gorm:"type:decimal(10,2)" json:"fixedPrice"`
	Status         string                      `gorm:"size:32;default:active" json:"status"`
	ScheduledDate  *time.Time                  `json:"scheduledDate"`
	Duration       *int                        `json:"duration"`
	SkillsRequired datatypes.JSONSlice[string] `gorm:"type:json" json:"skillsRequired"`
	Location       string                      `gorm:"size:255" json:"location"`
	IsUrgent       bool                        `gorm:"not null;default:false" json:"isUrgent"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
	User           *User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (g *Gig) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GigApplication is a user's bid on a gig.
type GigApplication struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	GigID        string    `gorm:"size:64;not null;index" json:"gigId"`
	UserID       string    `gorm:"size:64;not null;index" json:"userId"`
	Message      string    `gorm:"type:text" json:"message"`
	ProposedRate *float64  `gorm:"type:decimal(10,2)" json:"proposedRate"`
	Status       string    `gorm:"size:32;default:pending" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	Gig          *Gig      `gorm:"foreignKey:GigID" json:"gig,omitempty"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (a *GigApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
