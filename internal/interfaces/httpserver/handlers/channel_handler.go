package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/chat"
	"fixitnow/services/marketplace-api/internal/infrastructure/auth"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/responses"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// ChannelHandler exposes the live chat feed over server-sent events.
type ChannelHandler struct {
	controller *chat.Controller
	heartbeat  time.Duration
	log        zerolog.Logger
}

// NewChannelHandler constructs the handler.
func NewChannelHandler(controller *chat.Controller, heartbeat time.Duration, log zerolog.Logger) *ChannelHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &ChannelHandler{
		controller: controller,
		heartbeat:  heartbeat,
		log:        log.With().Str("handler", "channel").Logger(),
	}
}

// Stream handles GET /v1/channel/:peer_id/:bid_id/stream.
//
// The session is opened against fresh bid state; a bid that left Accepted
// since the client last looked yields 403 before any event is written. The
// subscription is released on every exit path, including client disconnect.
func (h *ChannelHandler) Stream(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "channel-no-user")
		return
	}

	peerID := c.Param("peer_id")
	bidID := c.Param("bid_id")

	session, err := h.controller.Open(c.Request.Context(), userID, peerID, bidID)
	if err != nil {
		responses.HandleError(c, err, "failed to open channel")
		return
	}
	defer session.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("connected", gin.H{"bid": session.BidID(), "history_len": len(session.History())})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case m, open := <-session.Events():
			if !open {
				return false
			}
			c.SSEvent("receiveMessage", responses.MapMessageToResponse(&m))
			return true
		case <-ticker.C:
			// Comment frame keeps intermediaries from timing out the stream.
			_, _ = io.WriteString(w, ": heartbeat\n\n")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	h.log.Debug().
		Str("user_id", userID).
		Str("bid_id", bidID).
		Msg("channel stream closed")
}
