package dto

import "github.com/hommiefi/hommiefi-api/internal/models"

// HavenGroupCreateRequest creates a new support community.
type HavenGroupCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	AgeGroup    string `json:"ageGroup" validate:"required,oneof=newborn toddler preschool school teen general"`
	IsPrivate   *bool  `json:"isPrivate"`
}

// ToModel builds the persistence model.
func (r HavenGroupCreateRequest) ToModel() models.HavenGroup {
	isPrivate := true
	if r.IsPrivate != nil {
		isPrivate = *r.IsPrivate
	}

	return models.HavenGroup{
		Name:        r.Name,
		Description: r.Description,
		AgeGroup:    r.AgeGroup,
		IsPrivate:   isPrivate,
	}
}
