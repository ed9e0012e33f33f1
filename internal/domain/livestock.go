package domain

import "time"

// Livestock represents an animal tracked for a farmer. Health, breeding and
// feeding histories are embedded record collections stored as JSONB arrays
// on the livestock row; record ids are generated client-side and are unique
// within their parent's array.
type Livestock struct {
	ID              string           `json:"id"`
	OrgID           string           `json:"org_id"`
	FarmerID        string           `json:"farmer_id"`
	TagNumber       string           `json:"tag_number"`
	Type            string           `json:"type"`
	Breed           string           `json:"breed,omitempty"`
	Gender          string           `json:"gender,omitempty"`
	Status          string           `json:"status"`
	AcquisitionDate *time.Time       `json:"acquisition_date,omitempty"`
	HealthRecords   []HealthRecord   `json:"health_records"`
	BreedingRecords []BreedingRecord `json:"breeding_records"`
	FeedingRecords  []FeedingRecord  `json:"feeding_records"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Livestock statuses
const (
	LivestockStatusActive   = "active"
	LivestockStatusInactive = "inactive"
	LivestockStatusSick     = "sick"
	LivestockStatusPregnant = "pregnant"
	LivestockStatusSold     = "sold"
	LivestockStatusDeceased = "deceased"
)

// ValidLivestockStatus reports whether s is a known livestock status
func ValidLivestockStatus(s string) bool {
	switch s {
	case LivestockStatusActive, LivestockStatusInactive, LivestockStatusSick,
		LivestockStatusPregnant, LivestockStatusSold, LivestockStatusDeceased:
		return true
	}
	return false
}

// HealthRecord is an embedded veterinary record on a livestock row
type HealthRecord struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Diagnosis    string    `json:"diagnosis"`
	Treatment    string    `json:"treatment,omitempty"`
	Medication   string    `json:"medication,omitempty"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// BreedingRecord is an embedded breeding history record on a livestock row
type BreedingRecord struct {
	ID                string     `json:"id"`
	BreedingDate      time.Time  `json:"breeding_date"`
	Status            string     `json:"status"`
	ExpectedBirthDate *time.Time `json:"expected_birth_date,omitempty"`
	ActualBirthDate   *time.Time `json:"actual_birth_date,omitempty"`
	SireTag           string     `json:"sire_tag,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Breeding statuses
const (
	BreedingStatusPregnant   = "pregnant"
	BreedingStatusDelivered  = "delivered"
	BreedingStatusFailed     = "failed"
	BreedingStatusInProgress = "in_progress"
)

// ValidBreedingStatus reports whether s is a known breeding status
func ValidBreedingStatus(s string) bool {
	switch s {
	case BreedingStatusPregnant, BreedingStatusDelivered,
		BreedingStatusFailed, BreedingStatusInProgress:
		return true
	}
	return false
}

// FeedingRecord is an embedded feeding log record on a livestock row
type FeedingRecord struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	FeedType  string    `json:"feed_type"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LivestockStats holds aggregate counts for an organization's herd
type LivestockStats struct {
	TotalAnimals int            `json:"total_animals"`
	ByType       map[string]int `json:"by_type"`
	ByStatus     map[string]int `json:"by_status"`
}
