package entities

import (
	"time"

	"fixitnow/services/marketplace-api/internal/domain/bid"
)

// Bid represents the database schema for bids.
type Bid struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID          string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	RequirementID     string     `gorm:"type:varchar(64);index:idx_bid_requirement;index:idx_bid_provider_requirement;not null"`
	ProviderID        string     `gorm:"type:varchar(64);index:idx_bid_provider_requirement;not null"`
	Amount            float64    `gorm:"not null"`
	Proposal          *string    `gorm:"type:text"`
	DeliveryTimeHours int        `gorm:"not null"`
	Status            bid.Status `gorm:"type:varchar(20);not null;default:'Pending'"`
}

// TableName specifies the table name for Bid.
func (Bid) TableName() string {
	return "bids"
}

// EtoD converts database entity to domain model
func (b *Bid) EtoD() *bid.Bid {
	return &bid.Bid{
		ID:                b.ID,
		PublicID:          b.PublicID,
		RequirementID:     b.RequirementID,
		ProviderID:        b.ProviderID,
		Amount:            b.Amount,
		Proposal:          b.Proposal,
		DeliveryTimeHours: b.DeliveryTimeHours,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// NewSchemaBid creates a database entity from domain model
func NewSchemaBid(b *bid.Bid) *Bid {
	return &Bid{
		ID:                b.ID,
		PublicID:          b.PublicID,
		RequirementID:     b.RequirementID,
		ProviderID:        b.ProviderID,
		Amount:            b.Amount,
		Proposal:          b.Proposal,
		DeliveryTimeHours: b.DeliveryTimeHours,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
