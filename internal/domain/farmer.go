package domain

import "time"

// Farmer represents a registered farmer within an organization. Farmers are
// referenced, not owned, by livestock, crop and financial records.
type Farmer struct {
	ID             string    `json:"id"`
	OrgID          string    `json:"org_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	FarmLocation   string    `json:"farm_location,omitempty"`
	FarmSizeHa     *float64  `json:"farm_size_ha,omitempty"`
	CropTypes      []string  `json:"crop_types,omitempty"`
	LivestockTypes []string  `json:"livestock_types,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName returns the farmer's display name
func (f *Farmer) FullName() string {
	if f.FirstName == "" {
		return f.LastName
	}
	if f.LastName == "" {
		return f.FirstName
	}
	return f.FirstName + " " + f.LastName
}

// FarmerStats holds aggregate counts for an organization's farmer registry
type FarmerStats struct {
	TotalFarmers     int            `json:"total_farmers"`
	TotalFarmAreaHa  float64        `json:"total_farm_area_ha"`
	ByCropType       map[string]int `json:"by_crop_type"`
	ByLivestockType  map[string]int `json:"by_livestock_type"`
	RegisteredLast30 int            `json:"registered_last_30_days"`
}
