package bid

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/infrastructure/database/entities"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// PostgresRepository persists bids.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository builds a bid repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the bid record. A second Pending bid by the same provider on
// the same requirement is rejected so exactly one bid stays active per pair.
func (r *PostgresRepository) Create(ctx context.Context, b *domain.Bid) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Bid{}).
		Where("provider_id = ? AND requirement_id = ? AND status = ?", b.ProviderID, b.RequirementID, domain.StatusPending).
		Count(&count).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to check existing bids", err, "bid-repo-create-check")
	}
	if count > 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "provider already has a pending bid on this requirement", nil,
			"bid-repo-create-duplicate")
	}

	entity := entities.NewSchemaBid(b)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create bid", err, "bid-repo-create")
	}

	b.ID = entity.ID
	b.CreatedAt = entity.CreatedAt
	b.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByPublicID fetches a bid by its public ID.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Bid, error) {
	var entity entities.Bid
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, fmt.Sprintf("bid not found: %s", publicID), nil,
				"bid-repo-not-found")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to fetch bid", err, "bid-repo-fetch")
	}
	return entity.EtoD(), nil
}

// FindByFilter fetches bids matching the filter criteria, newest first.
func (r *PostgresRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Bid, error) {
	query := r.db.WithContext(ctx).Model(&entities.Bid{})

	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.RequirementID != nil {
		query = query.Where("requirement_id = ?", *filter.RequirementID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var records []entities.Bid
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find bids", err, "bid-repo-filter")
	}

	result := make([]*domain.Bid, len(records))
	for i := range records {
		result[i] = records[i].EtoD()
	}
	return result, nil
}

// UpdateStatus performs the transition with a source-state guard so racing
// deciders cannot both win. Zero rows affected means the bid either vanished
// or already left the source state.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, publicID string, from, to domain.Status) (*domain.Bid, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Bid{}).
		Where("public_id = ? AND status = ?", publicID, from).
		Update("status", to)
	if res.Error != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to update bid status", res.Error, "bid-repo-update-status")
	}
	if res.RowsAffected == 0 {
		// Distinguish a lost race from a missing record.
		current, err := r.FindByPublicID(ctx, publicID)
		if err != nil {
			return nil, err
		}
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "bid status changed concurrently", nil, "bid-repo-update-conflict",
			map[string]any{"status": current.Status.String()})
	}

	return r.FindByPublicID(ctx, publicID)
}

// Delete removes the bid while it is still in the given source state.
func (r *PostgresRepository) Delete(ctx context.Context, publicID string, from domain.Status) error {
	res := r.db.WithContext(ctx).
		Where("public_id = ? AND status = ?", publicID, from).
		Delete(&entities.Bid{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete bid", res.Error, "bid-repo-delete")
	}
	if res.RowsAffected == 0 {
		current, err := r.FindByPublicID(ctx, publicID)
		if err != nil {
			return err
		}
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "bid status changed concurrently", nil, "bid-repo-delete-conflict",
			map[string]any{"status": current.Status.String()})
	}
	return nil
}
