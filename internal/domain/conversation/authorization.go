// Package conversation decides who may open a chat channel.
//
// The rule exists in exactly one place: a conversation over a bid is open to
// its client and provider only while the bid is Accepted.
package conversation

import (
	"context"

	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/domain/requirement"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// CanOpen reports whether a chat channel may be opened for the bid.
// Pure function of bid state - no side effects, no I/O.
func CanOpen(b *bid.Bid) bool {
	return b != nil && b.Status == bid.StatusAccepted
}

// Grant is the resolved (client, provider, bid) triple of an authorized conversation.
type Grant struct {
	ClientID   string
	ProviderID string
	BidID      string
}

// Participants returns the two user IDs of the conversation.
func (g *Grant) Participants() (string, string) {
	return g.ClientID, g.ProviderID
}

// Authorizer re-derives conversation access from fresh bid state.
type Authorizer struct {
	bids         bid.Repository
	requirements requirement.Reader
}

// NewAuthorizer creates a conversation authorizer.
func NewAuthorizer(bids bid.Repository, requirements requirement.Reader) *Authorizer {
	return &Authorizer{bids: bids, requirements: requirements}
}

// Authorize checks that userID and peerID are the client and provider of the
// bid and that the bid is Accepted. The bid is always re-read so that a stale
// caller cannot open a channel on a bid that was withdrawn or declined since
// it last looked.
func (a *Authorizer) Authorize(ctx context.Context, userID, peerID, bidID string) (*Grant, error) {
	if userID == "" || peerID == "" || bidID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "user, peer and bid are required", nil, "conv-auth-missing-ids")
	}

	b, err := a.bids.FindByPublicID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	if !CanOpen(b) {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden, "conversation requires an accepted bid", nil, "conv-auth-not-accepted",
			map[string]any{"status": b.Status.String()})
	}

	req, err := a.requirements.Get(ctx, b.RequirementID)
	if err != nil {
		return nil, err
	}

	pair := map[string]bool{req.ClientID: true, b.ProviderID: true}
	if !pair[userID] || !pair[peerID] || userID == peerID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden, "user is not a participant of this conversation", nil,
			"conv-auth-not-participant")
	}

	return &Grant{
		ClientID:   req.ClientID,
		ProviderID: b.ProviderID,
		BidID:      b.PublicID,
	}, nil
}
