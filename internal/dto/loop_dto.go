package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// LoopItemCreateRequest mirrors the insertable fields of a loop item.
// Server-generated id/timestamps and the owning user id are never accepted
// from the client.
type LoopItemCreateRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=255"`
	Description    string     `json:"description" validate:"omitempty,max=5000"`
	Category       string     `json:"category" validate:"required,max=64"`
	Type           string     `json:"type" validate:"required,oneof=offer request swap"`
	Status         string     `json:"status" validate:"omitempty,max=32"`
	Price          *float64   `json:"price" validate:"omitempty,gte=0"`
	ImageURLs      []string   `json:"imageUrls" validate:"omitempty,dive,url"`
	Location       string     `json:"location" validate:"omitempty,max=255"`
	AvailableFrom  *time.Time `json:"availableFrom"`
	AvailableUntil *time.Time `json:"availableUntil"`
}

// ToModel builds the persistence model owned by the given user.
func (r LoopItemCreateRequest) ToModel(userID string) models.LoopItem {
	status := r.Status
	if status == "" {
		status = "available"
	}

	return models.LoopItem{
		UserID:         userID,
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Type:           r.Type,
		Status:         status,
		Price:          r.Price,
		ImageURLs:      datatypes.NewJSONSlice(r.ImageURLs),
		Location:       r.Location,
		AvailableFrom:  r.AvailableFrom,
		AvailableUntil: r.AvailableUntil,
	}
}

// LoopItemUpdateRequest carries the merge-patch fields of a loop item.
type LoopItemUpdateRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	Category       *string    `json:"category" validate:"omitempty,max=64"`
	Type           *string    `json:"type" validate:"omitempty,oneof=offer request swap"`
	Status         *string    `json:"status" validate:"omitempty,max=32"`
	Price          *float64   `json:"price" validate:"omitempty,gte=0"`
	ImageURLs      []string   `json:"imageUrls" validate:"omitempty,dive,url"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
	AvailableFrom  *time.Time `json:"availableFrom"`
	AvailableUntil *time.Time `json:"availableUntil"`
}

// Updates returns the column map for the provided fields only.
func (r LoopItemUpdateRequest) Updates() map[string]interface{} {
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
	if r.Type != nil {
		updates["type"] = *r.Type
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.ImageURLs != nil {
		updates["image_urls"] = datatypes.NewJSONSlice(r.ImageURLs)
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.AvailableFrom != nil {
		updates["available_from"] = *r.AvailableFrom
	}
	if r.AvailableUntil != nil {
		updates["available_until"] = *r.AvailableUntil
	}
	return updates
}
