package bid_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/domain/requirement"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// memoryRepository is an in-memory bid.Repository with the same guard
// semantics as the postgres implementation.
type memoryRepository struct {
	mu   sync.Mutex
	bids map[string]*bid.Bid
	next uint
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{bids: make(map[string]*bid.Bid)}
}

func (r *memoryRepository) Create(ctx context.Context, b *bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bids {
		if existing.ProviderID == b.ProviderID &&
			existing.RequirementID == b.RequirementID &&
			existing.Status == bid.StatusPending {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict, "provider already has a pending bid on this requirement", nil,
				"bid-repo-create-duplicate")
		}
	}
	r.next++
	b.ID = r.next
	clone := *b
	r.bids[b.PublicID] = &clone
	return nil
}

func (r *memoryRepository) FindByPublicID(ctx context.Context, publicID string) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[publicID]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "bid not found: "+publicID, nil, "bid-repo-not-found")
	}
	clone := *b
	return &clone, nil
}

func (r *memoryRepository) FindByFilter(ctx context.Context, filter bid.Filter) ([]*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bid.Bid
	for _, b := range r.bids {
		if filter.ProviderID != nil && b.ProviderID != *filter.ProviderID {
			continue
		}
		if filter.RequirementID != nil && b.RequirementID != *filter.RequirementID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		clone := *b
		result = append(result, &clone)
	}
	return result, nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, publicID string, from, to bid.Status) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[publicID]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "bid not found: "+publicID, nil, "bid-repo-not-found")
	}
	if b.Status != from {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "bid status changed concurrently", nil, "bid-repo-update-conflict")
	}
	b.Status = to
	clone := *b
	return &clone, nil
}

func (r *memoryRepository) Delete(ctx context.Context, publicID string, from bid.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[publicID]
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "bid not found: "+publicID, nil, "bid-repo-not-found")
	}
	if b.Status != from {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "bid status changed concurrently", nil, "bid-repo-delete-conflict")
	}
	delete(r.bids, publicID)
	return nil
}

// stubReader serves a fixed set of requirements.
type stubReader struct {
	requirements map[string]*requirement.Requirement
}

func (s *stubReader) Get(ctx context.Context, id string) (*requirement.Requirement, error) {
	req, ok := s.requirements[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeNotFound, "requirement not found: "+id, nil, "requirement-client-not-found")
	}
	return req, nil
}

func newTestService(t *testing.T) (bid.Service, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	reader := &stubReader{requirements: map[string]*requirement.Requirement{
		"req-1": {ID: "req-1", ClientID: "client-1", Title: "Fix the sink"},
		"req-2": {ID: "req-2", ClientID: "client-2", Title: "Paint the fence"},
	}}
	return bid.NewService(repo, reader, zerolog.Nop()), repo
}

func mustCreate(t *testing.T, svc bid.Service, provider, requirementID string) *bid.Bid {
	t.Helper()
	b, err := svc.Create(context.Background(), bid.CreateParams{
		ProviderID:        provider,
		RequirementID:     requirementID,
		Amount:            120,
		DeliveryTimeHours: 48,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return b
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService(t)

	b := mustCreate(t, svc, "provider-1", "req-1")

	if b.Status != bid.StatusPending {
		t.Errorf("new bid status = %v, want Pending", b.Status)
	}
	if b.PublicID == "" {
		t.Error("new bid has empty public ID")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		params bid.CreateParams
	}{
		{"missing provider", bid.CreateParams{RequirementID: "req-1", Amount: 10, DeliveryTimeHours: 1}},
		{"missing requirement", bid.CreateParams{ProviderID: "p", Amount: 10, DeliveryTimeHours: 1}},
		{"zero amount", bid.CreateParams{ProviderID: "p", RequirementID: "req-1", DeliveryTimeHours: 1}},
		{"negative amount", bid.CreateParams{ProviderID: "p", RequirementID: "req-1", Amount: -5, DeliveryTimeHours: 1}},
		{"zero delivery time", bid.CreateParams{ProviderID: "p", RequirementID: "req-1", Amount: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.params)
			if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
				t.Errorf("Create() error = %v, want VALIDATION", err)
			}
		})
	}
}

func TestService_Create_UnknownRequirement(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), bid.CreateParams{
		ProviderID:        "provider-1",
		RequirementID:     "req-missing",
		Amount:            50,
		DeliveryTimeHours: 8,
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Create() error = %v, want NOT_FOUND", err)
	}
}

func TestService_Create_DuplicatePending(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreate(t, svc, "provider-1", "req-1")

	_, err := svc.Create(context.Background(), bid.CreateParams{
		ProviderID:        "provider-1",
		RequirementID:     "req-1",
		Amount:            99,
		DeliveryTimeHours: 24,
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("second pending bid error = %v, want CONFLICT", err)
	}
}

func TestService_Decide_Accept(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	updated, err := svc.Decide(context.Background(), "client-1", b.PublicID, bid.StatusAccepted)
	if err != nil {
		t.Fatalf("Decide() unexpected error: %v", err)
	}
	if updated.Status != bid.StatusAccepted {
		t.Errorf("decided bid status = %v, want Accepted", updated.Status)
	}
}

func TestService_Decide_NotOwner(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	_, err := svc.Decide(context.Background(), "client-2", b.PublicID, bid.StatusAccepted)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("Decide() by non-owner error = %v, want FORBIDDEN", err)
	}
}

func TestService_Decide_InvalidTarget(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	_, err := svc.Decide(context.Background(), "client-1", b.PublicID, bid.StatusPending)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("Decide(Pending) error = %v, want VALIDATION", err)
	}
}

func TestService_Decide_AlreadyDecided(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	if _, err := svc.Decide(context.Background(), "client-1", b.PublicID, bid.StatusDeclined); err != nil {
		t.Fatalf("first decision unexpected error: %v", err)
	}

	_, err := svc.Decide(context.Background(), "client-1", b.PublicID, bid.StatusAccepted)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("second decision error = %v, want CONFLICT", err)
	}
}

func TestService_Withdraw(t *testing.T) {
	svc, repo := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	if err := svc.Withdraw(context.Background(), "provider-1", b.PublicID); err != nil {
		t.Fatalf("Withdraw() unexpected error: %v", err)
	}

	if _, err := repo.FindByPublicID(context.Background(), b.PublicID); !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("withdrawn bid still present, lookup error = %v", err)
	}

	// The pending slot opens up again after withdrawal.
	mustCreate(t, svc, "provider-1", "req-1")
}

func TestService_Withdraw_NotOwner(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	err := svc.Withdraw(context.Background(), "provider-2", b.PublicID)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("Withdraw() by non-owner error = %v, want FORBIDDEN", err)
	}
}

func TestService_Withdraw_AfterDecision(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "provider-1", "req-1")

	if _, err := svc.Decide(context.Background(), "client-1", b.PublicID, bid.StatusAccepted); err != nil {
		t.Fatalf("Decide() unexpected error: %v", err)
	}

	err := svc.Withdraw(context.Background(), "provider-1", b.PublicID)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("Withdraw() after acceptance error = %v, want CONFLICT", err)
	}
}

func TestService_ListByRequirement_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, "provider-1", "req-1")
	mustCreate(t, svc, "provider-2", "req-1")

	bids, err := svc.ListByRequirement(context.Background(), "client-1", "req-1")
	if err != nil {
		t.Fatalf("ListByRequirement() unexpected error: %v", err)
	}
	if len(bids) != 2 {
		t.Errorf("ListByRequirement() returned %d bids, want 2", len(bids))
	}

	if _, err := svc.ListByRequirement(context.Background(), "client-2", "req-1"); !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("ListByRequirement() by stranger error = %v, want FORBIDDEN", err)
	}
}

func TestService_ListByProvider(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, "provider-1", "req-1")
	mustCreate(t, svc, "provider-1", "req-2")
	mustCreate(t, svc, "provider-2", "req-1")

	bids, err := svc.ListByProvider(context.Background(), "provider-1", nil)
	if err != nil {
		t.Fatalf("ListByProvider() unexpected error: %v", err)
	}
	if len(bids) != 2 {
		t.Errorf("ListByProvider() returned %d bids, want 2", len(bids))
	}

	reqID := "req-2"
	bids, err = svc.ListByProvider(context.Background(), "provider-1", &reqID)
	if err != nil {
		t.Fatalf("ListByProvider(filtered) unexpected error: %v", err)
	}
	if len(bids) != 1 {
		t.Errorf("ListByProvider(filtered) returned %d bids, want 1", len(bids))
	}
}
