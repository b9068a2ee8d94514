// Package bid holds the bid entity and its lifecycle rules.
package bid

import "time"

// Bid is a provider's offer against a requirement.
type Bid struct {
	ID                uint
	PublicID          string
	RequirementID     string
	ProviderID        string
	Amount            float64
	Proposal          *string
	DeliveryTimeHours int
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateParams contains parameters for submitting a new bid.
type CreateParams struct {
	ProviderID        string
	RequirementID     string
	Amount            float64
	Proposal          *string
	DeliveryTimeHours int
}

// Filter narrows bid list queries.
type Filter struct {
	ProviderID    *string
	RequirementID *string
	Status        *Status
}
