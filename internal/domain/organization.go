package domain

import "time"

// Organization is the tenant boundary. Every other entity holds a foreign
// reference to exactly one organization and all reads and writes are
// filtered by it.
type Organization struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Address            string    `json:"address,omitempty"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	SubscriptionPlan   string    `json:"subscription_plan"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Subscription plans
const (
	PlanFree       = "free"
	PlanStandard   = "standard"
	PlanEnterprise = "enterprise"
)

// Subscription statuses
const (
	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)
