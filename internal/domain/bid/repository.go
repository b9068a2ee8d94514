package bid

import "context"

// Repository persists bids.
type Repository interface {
	// Create inserts the bid record. A second Pending bid for the same
	// (provider, requirement) pair is rejected with a CONFLICT error.
	Create(ctx context.Context, b *Bid) error

	// FindByPublicID fetches a bid by its public ID.
	FindByPublicID(ctx context.Context, publicID string) (*Bid, error)

	// FindByFilter fetches bids matching the filter, newest first.
	FindByFilter(ctx context.Context, filter Filter) ([]*Bid, error)

	// UpdateStatus performs a guarded transition: the status column is
	// updated only where the stored status still equals from. Returns a
	// CONFLICT error when the guard does not match.
	UpdateStatus(ctx context.Context, publicID string, from, to Status) (*Bid, error)

	// Delete removes the bid only while its stored status still equals from.
	// Returns a CONFLICT error when the guard does not match.
	Delete(ctx context.Context, publicID string, from Status) error
}
