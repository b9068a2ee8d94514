package message

import (
	"context"

	"gorm.io/gorm"

	domain "fixitnow/services/marketplace-api/internal/domain/message"
	"fixitnow/services/marketplace-api/internal/infrastructure/database/entities"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// PostgresRepository persists chat messages.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository builds a message repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the message record.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Message) error {
	entity := entities.NewSchemaMessage(m)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create message", err, "message-repo-create")
	}

	m.ID = entity.ID
	m.CreatedAt = entity.CreatedAt
	return nil
}

// FindThread returns the full conversation between two users on a bid,
// ascending by creation time with insertion order breaking ties.
func (r *PostgresRepository) FindThread(ctx context.Context, userA, userB, bidID string) ([]*domain.Message, error) {
	var records []entities.Message
	err := r.db.WithContext(ctx).
		Where("bid_id = ? AND ((sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?))",
			bidID, userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to fetch message thread", err, "message-repo-thread")
	}

	result := make([]*domain.Message, len(records))
	for i := range records {
		result[i] = records[i].EtoD()
	}
	return result, nil
}
