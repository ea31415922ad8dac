package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record created on first authentication.
type User struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	Email           string    `gorm:"size:255;uniqueIndex" json:"email"`
	FirstName       string    `gorm:"size:128" json:"firstName"`
	LastName        string    `gorm:"size:128" json:"lastName"`
	ProfileImageURL string    `gorm:"size:512" json:"profileImageUrl"`
	Phone           string    `gorm:"size:32" json:"phone"`
	Bio             string    `gorm:"type:text" json:"bio"`
	Neighborhood    string    `gorm:"size:128;index" json:"neighborhood"`
	City            string    `gorm:"size:128;index" json:"city"`
	State           string    `gorm:"size:64" json:"state"`
	Country         string    `gorm:"size:64;default:United States" json:"country"`
	IsVerified      bool      `gorm:"not null;default:false" json:"isVerified"`
	TrustScore      float64   `gorm:"type:decimal(3,2);default:0" json:"trustScore"`
	CommunityPoints int       `gorm:"not null;default:0" json:"communityPoints"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
