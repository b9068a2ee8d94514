package message

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/infrastructure/metrics"
	"fixitnow/services/marketplace-api/internal/utils/idgen"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// Service defines the message history operations.
type Service interface {
	// Fetch returns the complete thread snapshot at call time, ascending by
	// creation time.
	Fetch(ctx context.Context, userA, userB, bidID string) ([]*Message, error)

	// Append validates and persists a message, returning the stored record.
	Append(ctx context.Context, params AppendParams) (*Message, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a new message history service.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "message-service").Logger(),
	}
}

func (s *service) Fetch(ctx context.Context, userA, userB, bidID string) ([]*Message, error) {
	if userA == "" || userB == "" || bidID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "both participants and a bid are required", nil,
			"message-fetch-missing-ids")
	}
	return s.repo.FindThread(ctx, userA, userB, bidID)
}

func (s *service) Append(ctx context.Context, params AppendParams) (*Message, error) {
	if params.Sender == "" || params.Receiver == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "sender and receiver are required", nil, "message-append-missing-ids")
	}
	if params.Sender == params.Receiver {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "sender and receiver must differ", nil, "message-append-self")
	}
	if params.BidID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "bid is required", nil, "message-append-no-bid")
	}
	if strings.TrimSpace(params.Text) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "text must not be empty", nil, "message-append-empty-text")
	}

	publicID, err := idgen.GenerateSecureID("msg", 24)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to generate message ID", err, "message-append-idgen")
	}

	m := &Message{
		PublicID: publicID,
		Sender:   params.Sender,
		Receiver: params.Receiver,
		Text:     params.Text,
		BidID:    params.BidID,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	metrics.MessagesAppended.Inc()
	s.log.Debug().
		Str("message_id", m.PublicID).
		Str("bid_id", m.BidID).
		Msg("message appended")

	return m, nil
}
