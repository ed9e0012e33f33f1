package domain

import "time"

// Crop represents a crop cycle recorded for a farmer
type Crop struct {
	ID                  string     `json:"id"`
	OrgID               string     `json:"org_id"`
	FarmerID            string     `json:"farmer_id"`
	Name                string     `json:"name"`
	Variety             string     `json:"variety,omitempty"`
	Status              string     `json:"status"`
	PlantingDate        *time.Time `json:"planting_date,omitempty"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date,omitempty"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date,omitempty"`
	AreaHa              *float64   `json:"area_ha,omitempty"`
	ExpectedQuantity    *float64   `json:"expected_quantity,omitempty"`
	ActualQuantity      *float64   `json:"actual_quantity,omitempty"`
	ImageURL            string     `json:"image_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Crop statuses
const (
	CropStatusPlanted         = "planted"
	CropStatusGrowing         = "growing"
	CropStatusReadyForHarvest = "ready_for_harvest"
	CropStatusHarvested       = "harvested"
	CropStatusDiseased        = "diseased"
)

// ValidCropStatus reports whether s is a known crop status
func ValidCropStatus(s string) bool {
	switch s {
	case CropStatusPlanted, CropStatusGrowing, CropStatusReadyForHarvest,
		CropStatusHarvested, CropStatusDiseased:
		return true
	}
	return false
}

// CropStats holds aggregate counts for an organization's crop records
type CropStats struct {
	TotalCrops  int            `json:"total_crops"`
	TotalAreaHa float64        `json:"total_area_ha"`
	ByStatus    map[string]int `json:"by_status"`
	ByName      map[string]int `json:"by_name"`
}
