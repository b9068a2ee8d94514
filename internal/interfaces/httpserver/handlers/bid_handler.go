package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/infrastructure/auth"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/requests"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/responses"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// BidHandler exposes HTTP entrypoints for the Bids API.
type BidHandler struct {
	service bid.Service
	log     zerolog.Logger
}

// NewBidHandler constructs the handler.
func NewBidHandler(service bid.Service, log zerolog.Logger) *BidHandler {
	return &BidHandler{
		service: service,
		log:     log.With().Str("handler", "bid").Logger(),
	}
}

// Create handles POST /v1/bids. The authenticated user becomes the provider.
func (h *BidHandler) Create(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "bid-create-no-user")
		return
	}

	var req requests.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "bid-create-bad-body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), bid.CreateParams{
		RequirementID:     req.RequirementID,
		ProviderID:        userID,
		Amount:            req.Amount,
		Proposal:          req.Proposal,
		DeliveryTimeHours: req.DeliveryTimeHours,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create bid")
		return
	}

	c.JSON(http.StatusCreated, responses.MapBidToResponse(b))
}

// Get handles GET /v1/bids/:bid_id
func (h *BidHandler) Get(c *gin.Context) {
	b, err := h.service.GetByPublicID(c.Request.Context(), c.Param("bid_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get bid")
		return
	}

	c.JSON(http.StatusOK, responses.MapBidToResponse(b))
}

// ListMyBids handles GET /v1/bids/my-bids. An optional requirement query
// parameter narrows the list to one requirement.
func (h *BidHandler) ListMyBids(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "bid-list-no-user")
		return
	}

	var requirementID *string
	if v := c.Query("requirement"); v != "" {
		requirementID = &v
	}

	bids, err := h.service.ListByProvider(c.Request.Context(), userID, requirementID)
	if err != nil {
		responses.HandleError(c, err, "failed to list bids")
		return
	}

	c.JSON(http.StatusOK, responses.MapBidsToListResponse(bids))
}

// ListForRequirement handles GET /v1/bids/requirements/:requirement_id/bids.
// Only the client who owns the requirement sees its bids.
func (h *BidHandler) ListForRequirement(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "bid-list-req-no-user")
		return
	}

	bids, err := h.service.ListByRequirement(c.Request.Context(), userID, c.Param("requirement_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to list bids for requirement")
		return
	}

	c.JSON(http.StatusOK, responses.MapBidsToListResponse(bids))
}

// UpdateStatus handles PUT /v1/bids/:bid_id/status. Accepts only the two
// terminal decisions; everything else is rejected before touching the bid.
func (h *BidHandler) UpdateStatus(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "bid-decide-no-user")
		return
	}

	var req requests.UpdateBidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "bid-decide-bad-body")
		return
	}

	target, err := bid.ParseStatus(req.Status)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "unknown status: "+req.Status, "bid-decide-unknown-status")
		return
	}

	b, err := h.service.Decide(c.Request.Context(), userID, c.Param("bid_id"), target)
	if err != nil {
		responses.HandleError(c, err, "failed to update bid status")
		return
	}

	c.JSON(http.StatusOK, responses.MapBidToResponse(b))
}

// Withdraw handles DELETE /v1/bids/:bid_id
func (h *BidHandler) Withdraw(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "bid-withdraw-no-user")
		return
	}

	bidID := c.Param("bid_id")
	if err := h.service.Withdraw(c.Request.Context(), userID, bidID); err != nil {
		responses.HandleError(c, err, "failed to withdraw bid")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": bidID, "deleted": true})
}
