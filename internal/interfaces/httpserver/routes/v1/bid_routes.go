package v1

import (
	"github.com/gin-gonic/gin"

	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/handlers"
)

func registerBidRoutes(router gin.IRoutes, handler *handlers.BidHandler) {
	router.POST("/bids", handler.Create)
	// Static segments win over :bid_id, so my-bids and requirements never
	// collide with the single-bid route.
	router.GET("/bids/my-bids", handler.ListMyBids)
	router.GET("/bids/requirements/:requirement_id/bids", handler.ListForRequirement)
	router.GET("/bids/:bid_id", handler.Get)
	router.PUT("/bids/:bid_id/status", handler.UpdateStatus)
	router.DELETE("/bids/:bid_id", handler.Withdraw)
}
