package dto

// CreateFarmerRequest represents a request to register a farmer
type CreateFarmerRequest struct {
	FirstName      string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string   `json:"last_name" binding:"required,min=1,max=100"`
	Phone          string   `json:"phone" binding:"omitempty,max=30"`
	Email          string   `json:"email" binding:"omitempty,email"`
	FarmLocation   string   `json:"farm_location" binding:"omitempty,max=255"`
	FarmSizeHa     *float64 `json:"farm_size_ha" binding:"omitempty"`
	CropTypes      []string `json:"crop_types" binding:"omitempty"`
	LivestockTypes []string `json:"livestock_types" binding:"omitempty"`
}

// Validate applies the field rules binding tags cannot express. The first
// violated rule is reported and nothing is sent to the store.
func (r *CreateFarmerRequest) Validate() (bool, string) {
	if r.FarmSizeHa != nil && *r.FarmSizeHa <= 0 {
		return false, "Farm size must be greater than zero"
	}
	return true, ""
}

// UpdateFarmerRequest represents a partial farmer update; nil fields are
// left unchanged
type UpdateFarmerRequest struct {
	FirstName      *string   `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName       *string   `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone          *string   `json:"phone" binding:"omitempty,max=30"`
	Email          *string   `json:"email" binding:"omitempty,email"`
	FarmLocation   *string   `json:"farm_location" binding:"omitempty,max=255"`
	FarmSizeHa     *float64  `json:"farm_size_ha" binding:"omitempty"`
	CropTypes      *[]string `json:"crop_types" binding:"omitempty"`
	LivestockTypes *[]string `json:"livestock_types" binding:"omitempty"`
}

// Validate validates that at least one field is provided and field rules hold
func (r *UpdateFarmerRequest) Validate() (bool, string) {
	if r.FirstName == nil && r.LastName == nil && r.Phone == nil && r.Email == nil &&
		r.FarmLocation == nil && r.FarmSizeHa == nil && r.CropTypes == nil && r.LivestockTypes == nil {
		return false, "At least one field must be provided for update"
	}
	if r.FarmSizeHa != nil && *r.FarmSizeHa <= 0 {
		return false, "Farm size must be greater than zero"
	}
	return true, ""
}

// ListFarmersQuery represents query parameters for listing farmers
type ListFarmersQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search        string `form:"search" binding:"omitempty,max=255"`
	CropType      string `form:"crop_type" binding:"omitempty,max=100"`
	LivestockType string `form:"livestock_type" binding:"omitempty,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListFarmersQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}
