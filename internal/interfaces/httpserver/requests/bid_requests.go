package requests

// CreateBidRequest represents a provider's offer on a requirement.
type CreateBidRequest struct {
	RequirementID     string  `json:"requirement_id" binding:"required"`
	Amount            float64 `json:"amount" binding:"required"`
	Proposal          *string `json:"proposal,omitempty"`
	DeliveryTimeHours int     `json:"delivery_time_hours" binding:"required"`
}

// UpdateBidStatusRequest represents the client's decision on a bid.
type UpdateBidStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
