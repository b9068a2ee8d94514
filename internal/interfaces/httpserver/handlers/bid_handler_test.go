package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/handlers"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// MockBidService is a mock implementation of bid.Service for testing.
type MockBidService struct {
	CreateFunc            func(ctx context.Context, params bid.CreateParams) (*bid.Bid, error)
	GetByPublicIDFunc     func(ctx context.Context, publicID string) (*bid.Bid, error)
	ListByProviderFunc    func(ctx context.Context, providerID string, requirementID *string) ([]*bid.Bid, error)
	ListByRequirementFunc func(ctx context.Context, actorID, requirementID string) ([]*bid.Bid, error)
	DecideFunc            func(ctx context.Context, actorID, publicID string, target bid.Status) (*bid.Bid, error)
	WithdrawFunc          func(ctx context.Context, actorID, publicID string) error
}

func (m *MockBidService) Create(ctx context.Context, params bid.CreateParams) (*bid.Bid, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockBidService) GetByPublicID(ctx context.Context, publicID string) (*bid.Bid, error) {
	if m.GetByPublicIDFunc != nil {
		return m.GetByPublicIDFunc(ctx, publicID)
	}
	return nil, nil
}

func (m *MockBidService) ListByProvider(ctx context.Context, providerID string, requirementID *string) ([]*bid.Bid, error) {
	if m.ListByProviderFunc != nil {
		return m.ListByProviderFunc(ctx, providerID, requirementID)
	}
	return nil, nil
}

func (m *MockBidService) ListByRequirement(ctx context.Context, actorID, requirementID string) ([]*bid.Bid, error) {
	if m.ListByRequirementFunc != nil {
		return m.ListByRequirementFunc(ctx, actorID, requirementID)
	}
	return nil, nil
}

func (m *MockBidService) Decide(ctx context.Context, actorID, publicID string, target bid.Status) (*bid.Bid, error) {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, actorID, publicID, target)
	}
	return nil, nil
}

func (m *MockBidService) Withdraw(ctx context.Context, actorID, publicID string) error {
	if m.WithdrawFunc != nil {
		return m.WithdrawFunc(ctx, actorID, publicID)
	}
	return nil
}

func setupBidTestRouter(handler *handlers.BidHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}
	v1 := r.Group("/v1")
	{
		v1.POST("/bids", handler.Create)
		v1.GET("/bids/my-bids", handler.ListMyBids)
		v1.GET("/bids/requirements/:requirement_id/bids", handler.ListForRequirement)
		v1.GET("/bids/:bid_id", handler.Get)
		v1.PUT("/bids/:bid_id/status", handler.UpdateStatus)
		v1.DELETE("/bids/:bid_id", handler.Withdraw)
	}
	return r
}

func TestBidHandler_Create(t *testing.T) {
	mockService := &MockBidService{
		CreateFunc: func(ctx context.Context, params bid.CreateParams) (*bid.Bid, error) {
			if params.ProviderID != "provider-1" {
				t.Errorf("provider from auth = %q, want provider-1", params.ProviderID)
			}
			return &bid.Bid{
				PublicID:          "bid-123",
				RequirementID:     params.RequirementID,
				ProviderID:        params.ProviderID,
				Amount:            params.Amount,
				DeliveryTimeHours: params.DeliveryTimeHours,
				Status:            bid.StatusPending,
			}, nil
		},
	}

	handler := handlers.NewBidHandler(mockService, zerolog.Nop())
	router := setupBidTestRouter(handler, "provider-1")

	body, _ := json.Marshal(map[string]any{
		"requirement_id":      "req-1",
		"amount":              150.0,
		"delivery_time_hours": 24,
	})
	req, _ := http.NewRequest("POST", "/v1/bids", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["id"] != "bid-123" {
		t.Errorf("Expected bid id 'bid-123', got %v", response["id"])
	}
	if response["status"] != "Pending" {
		t.Errorf("Expected status 'Pending', got %v", response["status"])
	}
}

func TestBidHandler_Create_Unauthenticated(t *testing.T) {
	handler := handlers.NewBidHandler(&MockBidService{}, zerolog.Nop())
	router := setupBidTestRouter(handler, "")

	body, _ := json.Marshal(map[string]any{
		"requirement_id":      "req-1",
		"amount":              150.0,
		"delivery_time_hours": 24,
	})
	req, _ := http.NewRequest("POST", "/v1/bids", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestBidHandler_Create_MissingFields(t *testing.T) {
	handler := handlers.NewBidHandler(&MockBidService{}, zerolog.Nop())
	router := setupBidTestRouter(handler, "provider-1")

	req, _ := http.NewRequest("POST", "/v1/bids", bytes.NewReader([]byte(`{"amount": 5}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestBidHandler_UpdateStatus(t *testing.T) {
	mockService := &MockBidService{
		DecideFunc: func(ctx context.Context, actorID, publicID string, target bid.Status) (*bid.Bid, error) {
			if actorID != "client-1" || publicID != "bid-123" || target != bid.StatusAccepted {
				t.Errorf("Decide(%q, %q, %v) called with unexpected arguments", actorID, publicID, target)
			}
			return &bid.Bid{PublicID: publicID, Status: target}, nil
		},
	}

	handler := handlers.NewBidHandler(mockService, zerolog.Nop())
	router := setupBidTestRouter(handler, "client-1")

	body := []byte(`{"status": "Accepted"}`)
	req, _ := http.NewRequest("PUT", "/v1/bids/bid-123/status", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["status"] != "Accepted" {
		t.Errorf("Expected status 'Accepted', got %v", response["status"])
	}
}

func TestBidHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	handler := handlers.NewBidHandler(&MockBidService{}, zerolog.Nop())
	router := setupBidTestRouter(handler, "client-1")

	body := []byte(`{"status": "Cancelled"}`)
	req, _ := http.NewRequest("PUT", "/v1/bids/bid-123/status", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestBidHandler_UpdateStatus_Conflict(t *testing.T) {
	mockService := &MockBidService{
		DecideFunc: func(ctx context.Context, actorID, publicID string, target bid.Status) (*bid.Bid, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeConflict, "bid is no longer pending", nil, "bid-decide-not-pending")
		},
	}

	handler := handlers.NewBidHandler(mockService, zerolog.Nop())
	router := setupBidTestRouter(handler, "client-1")

	body := []byte(`{"status": "Declined"}`)
	req, _ := http.NewRequest("PUT", "/v1/bids/bid-123/status", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestBidHandler_Withdraw(t *testing.T) {
	called := false
	mockService := &MockBidService{
		WithdrawFunc: func(ctx context.Context, actorID, publicID string) error {
			called = true
			if actorID != "provider-1" || publicID != "bid-123" {
				t.Errorf("Withdraw(%q, %q) called with unexpected arguments", actorID, publicID)
			}
			return nil
		},
	}

	handler := handlers.NewBidHandler(mockService, zerolog.Nop())
	router := setupBidTestRouter(handler, "provider-1")

	req, _ := http.NewRequest("DELETE", "/v1/bids/bid-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !called {
		t.Error("Withdraw was never invoked")
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["deleted"] != true {
		t.Errorf("Expected deleted true, got %v", response["deleted"])
	}
}

func TestBidHandler_Get_NotFound(t *testing.T) {
	mockService := &MockBidService{
		GetByPublicIDFunc: func(ctx context.Context, publicID string) (*bid.Bid, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "bid not found", nil, "bid-repo-not-found")
		},
	}

	handler := handlers.NewBidHandler(mockService, zerolog.Nop())
	router := setupBidTestRouter(handler, "provider-1")

	req, _ := http.NewRequest("GET", "/v1/bids/bid-404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestBidHandler_ListMyBids(t *testing.T) {
	mockService := &MockBidService{
		ListByProviderFunc: func(ctx context.Context, providerID string, requirementID *string) ([]*bid.Bid, error) {
			if requirementID == nil || *requirementID != "req-1" {
				t.Errorf("requirement filter = %v, want req-1", requirementID)
			}
			return []*bid.Bid{{PublicID: "bid-1", ProviderID: providerID, Status: bid.StatusPending}}, nil
		},
	}

	handler := handlers.NewBidHandler(mockService, zerolog.Nop())
	router := setupBidTestRouter(handler, "provider-1")

	req, _ := http.NewRequest("GET", "/v1/bids/my-bids?requirement=req-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Bids []map[string]interface{} `json:"bids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Bids) != 1 {
		t.Errorf("Expected 1 bid, got %d", len(response.Bids))
	}
}
