package dto

import (
	"time"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// VibeSessionRequest carries the fields of an availability broadcast. Create
// and update share the shape; update treats absent fields as unchanged.
type VibeSessionRequest struct {
	Status         *string    `json:"status" validate:"omitempty,oneof=available busy offline"`
	Mood           *string    `json:"mood" validate:"omitempty,max=32"`
	Message        *string    `json:"message" validate:"omitempty,max=2000"`
	AvailableUntil *time.Time `json:"availableUntil"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
}

// ToModel builds a session owned by the given user, applying defaults for
// absent fields.
func (r VibeSessionRequest) ToModel(userID string) models.VibeSession {
	session := models.VibeSession{
		UserID: userID,
		Status: "available",
	}
	if r.Status != nil {
		session.Status = *r.Status
	}
	if r.Mood != nil {
		session.Mood = *r.Mood
	}
	if r.Message != nil {
		session.Message = *r.Message
	}
	if r.AvailableUntil != nil {
		session.AvailableUntil = r.AvailableUntil
	}
	if r.Location != nil {
		session.Location = *r.Location
	}
	return session
}

// Updates returns the column map for the provided fields only.
func (r VibeSessionRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Mood != nil {
		updates["mood"] = *r.Mood
	}
	if r.Message != nil {
		updates["message"] = *r.Message
	}
	if r.AvailableUntil != nil {
		updates["available_until"] = *r.AvailableUntil
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	return updates
}
