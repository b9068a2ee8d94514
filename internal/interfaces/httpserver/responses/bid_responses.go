package responses

import (
	"time"

	"fixitnow/services/marketplace-api/internal/domain/bid"
)

// BidResponse is the public shape of a bid.
type BidResponse struct {
	ID                string    `json:"id"`
	RequirementID     string    `json:"requirement_id"`
	ProviderID        string    `json:"provider_id"`
	Amount            float64   `json:"amount"`
	Proposal          *string   `json:"proposal,omitempty"`
	DeliveryTimeHours int       `json:"delivery_time_hours"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BidListResponse wraps a list of bids.
type BidListResponse struct {
	Bids []BidResponse `json:"bids"`
}

// MapBidToResponse converts a domain bid to its response shape.
func MapBidToResponse(b *bid.Bid) BidResponse {
	return BidResponse{
		ID:                b.PublicID,
		RequirementID:     b.RequirementID,
		ProviderID:        b.ProviderID,
		Amount:            b.Amount,
		Proposal:          b.Proposal,
		DeliveryTimeHours: b.DeliveryTimeHours,
		Status:            b.Status.String(),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// MapBidsToListResponse converts a slice of bids, never returning a nil list.
func MapBidsToListResponse(bids []*bid.Bid) BidListResponse {
	items := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		items = append(items, MapBidToResponse(b))
	}
	return BidListResponse{Bids: items}
}
