package dto

// EmergencyRequest is a HelpOut call for assistance from nearby neighbors.
type EmergencyRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1,max=5000"`
	Urgency     string `json:"urgency" validate:"required,oneof=low medium high critical"`
	Location    string `json:"location" validate:"required,min=1,max=255"`
}

// ProfileUpdateRequest is a partial edit of the caller's own profile.
type ProfileUpdateRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,max=128"`
	LastName     *string `json:"lastName" validate:"omitempty,max=128"`
	Bio          *string `json:"bio" validate:"omitempty,max=5000"`
	Neighborhood *string `json:"neighborhood" validate:"omitempty,max=128"`
}

// Updates returns the column map for the provided fields only.
func (r ProfileUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.FirstName != nil {
		updates["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["last_name"] = *r.LastName
	}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	if r.Neighborhood != nil {
		updates["neighborhood"] = *r.Neighborhood
	}
	return updates
}
