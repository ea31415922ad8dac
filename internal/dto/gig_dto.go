package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// GigCreateRequest mirrors the insertable fields of a gig posting.
// HourlyRate and FixedPrice are mutually exclusive; the service rejects
// payloads carrying both.
type GigCreateRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=255"`
	Description    string     `json:"description" validate:"omitempty,max=5000"`
	Category       string     `json:"category" validate:"required,max=64"`
	HourlyRate     *float64   `json:"hourlyRate" validate:"omitempty,gte=0"`
	FixedPrice     *float64   `json:"fixedPrice" validate:"omitempty,gte=0"`
	Status         string     `json:"status" validate:"omitempty,max=32"`
	ScheduledDate  *time.Time `json:"scheduledDate"`
	Duration       *int       `json:"duration" validate:"omitempty,gte=1"`
	SkillsRequired []string   `json:"skillsRequired" validate:"omitempty,dive,max=64"`
	Location       string     `json:"location" validate:"omitempty,max=255"`
	IsUrgent       bool       `json:"isUrgent"`
}

// ToModel builds the persistence model owned by the given user.
func (r GigCreateRequest) ToModel(userID string) models.Gig {
	status := r.Status
	if status == "" {
		status = "active"
	}

	return models.Gig{
		UserID:         userID,
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		HourlyRate:     r.HourlyRate,
		FixedPrice:     r.FixedPrice,
		Status:         status,
		ScheduledDate:  r.ScheduledDate,
		Duration:       r.Duration,
		SkillsRequired: datatypes.NewJSONSlice(r.SkillsRequired),
		Location:       r.Location,
		IsUrgent:       r.IsUrgent,
	}
}

// GigUpdateRequest carries the merge-patch fields of a gig.
type GigUpdateRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	Category       *string    `json:"category" validate:"omitempty,max=64"`
	HourlyRate     *float64   `json:"hourlyRate" validate:"omitempty,gte=0"`
	FixedPrice     *float64   `json:"fixedPrice" validate:"omitempty,gte=0"`
	Status         *string    `json:"status" validate:"omitempty,oneof=active in_progress completed cancelled"`
	ScheduledDate  *time.Time `json:"scheduledDate"`
	Duration       *int       `json:"duration" validate:"omitempty,gte=1"`
	SkillsRequired []string   `json:"skillsRequired" validate:"omitempty,dive,max=64"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
	IsUrgent       *bool      `json:"isUrgent"`
}

// Updates returns the column map for the provided fields only.
func (r GigUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.HourlyRate != nil {
		updates["hourly_rate"] = *r.HourlyRate
	}
	if r.FixedPrice != nil {
		updates["fixed_price"] = *r.FixedPrice
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.ScheduledDate != nil {
		updates["scheduled_date"] = *r.ScheduledDate
	}
	if r.Duration != nil {
		updates["duration"] = *r.Duration
	}
	if r.SkillsRequired != nil {
		updates["skills_required"] = datatypes.NewJSONSlice(r.SkillsRequired)
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.IsUrgent != nil {
		updates["is_urgent"] = *r.IsUrgent
	}
	return updates
}

// GigApplicationRequest is a user's bid on a gig.
type GigApplicationRequest struct {
	Message      string   `json:"message" validate:"omitempty,max=5000"`
	ProposedRate *float64 `json:"proposedRate" validate:"omitempty,gte=0"`
}

// ToModel builds the application row for the given gig and applicant.
func (r GigApplicationRequest) ToModel(gigID, userID string) models.GigApplication {
	return models.GigApplication{
		GigID:        gigID,
		UserID:       userID,
		Message:      r.Message,
		ProposedRate: r.ProposedRate,
		Status:       "pending",
	}
}
