package dto

// UpdateOrganizationRequest represents a partial update of the caller's
// organization profile. Subscription fields are managed out of band and are
// not updatable here.
type UpdateOrganizationRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Email     *string  `json:"email" binding:"omitempty,email"`
	Phone     *string  `json:"phone" binding:"omitempty,max=30"`
	Address   *string  `json:"address" binding:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// Validate validates that at least one field is provided
func (r *UpdateOrganizationRequest) Validate() (bool, string) {
	if r.Name == nil && r.Email == nil && r.Phone == nil && r.Address == nil &&
		r.Latitude == nil && r.Longitude == nil {
		return false, "At least one field must be provided for update"
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return false, "Latitude and longitude must be provided together"
	}
	return true, ""
}
