package v1

import (
	"github.com/gin-gonic/gin"

	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/handlers"
)

func registerMessageRoutes(router gin.IRoutes, handler *handlers.MessageHandler) {
	router.GET("/messages/:user_a/:user_b/:bid_id", handler.GetThread)
	router.POST("/messages", handler.Send)
}

func registerChannelRoutes(router gin.IRoutes, handler *handlers.ChannelHandler) {
	router.GET("/channel/:peer_id/:bid_id/stream", handler.Stream)
}
