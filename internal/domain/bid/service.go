package bid

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/requirement"
	"fixitnow/services/marketplace-api/internal/infrastructure/metrics"
	"fixitnow/services/marketplace-api/internal/utils/idgen"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// Service defines the business operations on bids.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Bid, error)
	GetByPublicID(ctx context.Context, publicID string) (*Bid, error)
	ListByProvider(ctx context.Context, providerID string, requirementID *string) ([]*Bid, error)
	ListByRequirement(ctx context.Context, actorID, requirementID string) ([]*Bid, error)
	Decide(ctx context.Context, actorID, publicID string, target Status) (*Bid, error)
	Withdraw(ctx context.Context, actorID, publicID string) error
}

type service struct {
	repo         Repository
	requirements requirement.Reader
	log          zerolog.Logger
}

// NewService creates a new bid service.
func NewService(repo Repository, requirements requirement.Reader, log zerolog.Logger) Service {
	return &service{
		repo:         repo,
		requirements: requirements,
		log:          log.With().Str("component", "bid-service").Logger(),
	}
}

// Create validates and persists a new bid with status Pending.
func (s *service) Create(ctx context.Context, params CreateParams) (*Bid, error) {
	if strings.TrimSpace(params.ProviderID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "provider is required", nil, "bid-create-no-provider")
	}
	if strings.TrimSpace(params.RequirementID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "requirement is required", nil, "bid-create-no-requirement")
	}
	if params.Amount <= 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "amount must be positive", nil, "bid-create-bad-amount")
	}
	if params.DeliveryTimeHours <= 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "delivery time must be positive", nil, "bid-create-bad-delivery")
	}

	if _, err := s.requirements.Get(ctx, params.RequirementID); err != nil {
		return nil, err
	}

	publicID, err := idgen.GenerateSecureID("bid", 24)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to generate bid ID", err, "bid-create-idgen")
	}

	b := &Bid{
		PublicID:          publicID,
		RequirementID:     params.RequirementID,
		ProviderID:        params.ProviderID,
		Amount:            params.Amount,
		Proposal:          params.Proposal,
		DeliveryTimeHours: params.DeliveryTimeHours,
		Status:            StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.BidsCreated.Inc()
	s.log.Info().
		Str("bid_id", b.PublicID).
		Str("provider_id", b.ProviderID).
		Str("requirement_id", b.RequirementID).
		Msg("bid created")

	return b, nil
}

func (s *service) GetByPublicID(ctx context.Context, publicID string) (*Bid, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

func (s *service) ListByProvider(ctx context.Context, providerID string, requirementID *string) ([]*Bid, error) {
	filter := Filter{ProviderID: &providerID}
	if requirementID != nil && *requirementID != "" {
		filter.RequirementID = requirementID
	}
	return s.repo.FindByFilter(ctx, filter)
}

// ListByRequirement returns all bids on a requirement for its owning client.
func (s *service) ListByRequirement(ctx context.Context, actorID, requirementID string) ([]*Bid, error) {
	req, err := s.requirements.Get(ctx, requirementID)
	if err != nil {
		return nil, err
	}
	if req.ClientID != actorID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden, "only the owning client may list bids on a requirement", nil,
			"bid-list-not-owner")
	}
	return s.repo.FindByFilter(ctx, Filter{RequirementID: &requirementID})
}

// Decide transitions a Pending bid to Accepted or Declined on behalf of the
// client who owns the requirement.
func (s *service) Decide(ctx context.Context, actorID, publicID string, target Status) (*Bid, error) {
	if target != StatusAccepted && target != StatusDeclined {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "status must be Accepted or Declined", nil, "bid-decide-bad-status")
	}

	b, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	req, err := s.requirements.Get(ctx, b.RequirementID)
	if err != nil {
		return nil, err
	}
	if req.ClientID != actorID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden, "only the owning client may decide a bid", nil,
			"bid-decide-not-owner")
	}

	if _, err := b.Status.TransitionTo(target); err != nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict, "bid is no longer pending", err, "bid-decide-not-pending",
			map[string]any{"status": b.Status.String()})
	}

	// The repository re-checks the source state so concurrent deciders
	// cannot both win.
	updated, err := s.repo.UpdateStatus(ctx, publicID, StatusPending, target)
	if err != nil {
		return nil, err
	}

	metrics.BidStatusTransitions.WithLabelValues(StatusPending.String(), target.String()).Inc()
	s.log.Info().
		Str("bid_id", publicID).
		Str("client_id", actorID).
		Str("status", target.String()).
		Msg("bid decided")

	return updated, nil
}

// Withdraw removes a still-Pending bid on behalf of the provider who owns it.
func (s *service) Withdraw(ctx context.Context, actorID, publicID string) error {
	b, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return err
	}

	if b.ProviderID != actorID {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden, "only the owning provider may withdraw a bid", nil,
			"bid-withdraw-not-owner")
	}

	if !b.Status.CanWithdraw() {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict, "only pending bids can be withdrawn", nil, "bid-withdraw-not-pending",
			map[string]any{"status": b.Status.String()})
	}

	if err := s.repo.Delete(ctx, publicID, StatusPending); err != nil {
		return err
	}

	metrics.BidsWithdrawn.Inc()
	s.log.Info().
		Str("bid_id", publicID).
		Str("provider_id", actorID).
		Msg("bid withdrawn")

	return nil
}
