package domain

import "time"

// ExtensionService represents an advisory or training activity run by the
// organization's extension officers
type ExtensionService struct {
	ID            string     `json:"id"`
	OrgID         string     `json:"org_id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Location      string     `json:"location,omitempty"`
	AttendeeCount int        `json:"attendee_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Extension service categories
const (
	ExtensionCategoryTraining      = "training"
	ExtensionCategoryAdvisory      = "advisory"
	ExtensionCategoryDemonstration = "demonstration"
	ExtensionCategoryFieldVisit    = "field_visit"
)

// ValidExtensionCategory reports whether c is a known category
func ValidExtensionCategory(c string) bool {
	switch c {
	case ExtensionCategoryTraining, ExtensionCategoryAdvisory,
		ExtensionCategoryDemonstration, ExtensionCategoryFieldVisit:
		return true
	}
	return false
}

// Extension service statuses
const (
	ExtensionStatusScheduled  = "scheduled"
	ExtensionStatusInProgress = "in_progress"
	ExtensionStatusCompleted  = "completed"
	ExtensionStatusCancelled  = "cancelled"
)

// ValidExtensionStatus reports whether s is a known status
func ValidExtensionStatus(s string) bool {
	switch s {
	case ExtensionStatusScheduled, ExtensionStatusInProgress,
		ExtensionStatusCompleted, ExtensionStatusCancelled:
		return true
	}
	return false
}

// ExtensionStats holds aggregate counts for extension activities
type ExtensionStats struct {
	TotalServices  int            `json:"total_services"`
	TotalAttendees int            `json:"total_attendees"`
	ByCategory     map[string]int `json:"by_category"`
	ByStatus       map[string]int `json:"by_status"`
}
