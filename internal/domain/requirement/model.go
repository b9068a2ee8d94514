// Package requirement provides a read-only view of client-posted jobs.
// Requirements are owned by an external service and are never mutated here.
package requirement

import "context"

// Requirement is a client-posted job description.
type Requirement struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
}

// Reader fetches requirements from the owning service.
type Reader interface {
	// Get returns the requirement or a NOT_FOUND error when it does not exist.
	Get(ctx context.Context, id string) (*Requirement, error)
}
