package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/chat"
	"fixitnow/services/marketplace-api/internal/domain/conversation"
	"fixitnow/services/marketplace-api/internal/domain/message"
	"fixitnow/services/marketplace-api/internal/infrastructure/auth"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/requests"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/responses"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// MessageHandler exposes HTTP entrypoints for the chat history API.
type MessageHandler struct {
	controller *chat.Controller
	authorizer *conversation.Authorizer
	history    message.Service
	log        zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(controller *chat.Controller, authorizer *conversation.Authorizer, history message.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		controller: controller,
		authorizer: authorizer,
		history:    history,
		log:        log.With().Str("handler", "message").Logger(),
	}
}

// GetThread handles GET /v1/messages/:user_a/:user_b/:bid_id. The caller must
// be one of the two participants and the bid must still grant the conversation.
func (h *MessageHandler) GetThread(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "message-thread-no-user")
		return
	}

	userA := c.Param("user_a")
	userB := c.Param("user_b")
	bidID := c.Param("bid_id")

	if userID != userA && userID != userB {
		responses.HandleNewError(c, platformerrors.ErrorTypeForbidden, "caller is not a participant of this thread", "message-thread-not-participant")
		return
	}

	if _, err := h.authorizer.Authorize(c.Request.Context(), userA, userB, bidID); err != nil {
		responses.HandleError(c, err, "conversation not authorized")
		return
	}

	thread, err := h.history.Fetch(c.Request.Context(), userA, userB, bidID)
	if err != nil {
		responses.HandleError(c, err, "failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, responses.MapMessagesToListResponse(thread))
}

// Send handles POST /v1/messages. The sender is always the authenticated user;
// the conversation is re-authorized against fresh bid state before the append.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "message-send-no-user")
		return
	}

	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "message-send-bad-body")
		return
	}
	if req.Sender != "" && req.Sender != userID {
		responses.HandleNewError(c, platformerrors.ErrorTypeForbidden, "sender must be the authenticated user", "message-send-sender-mismatch")
		return
	}

	if _, err := h.authorizer.Authorize(c.Request.Context(), userID, req.Receiver, req.BidID); err != nil {
		responses.HandleError(c, err, "conversation not authorized")
		return
	}

	m, err := h.controller.Post(c.Request.Context(), message.AppendParams{
		Sender:   userID,
		Receiver: req.Receiver,
		Text:     req.Text,
		BidID:    req.BidID,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, responses.MapMessageToResponse(m))
}
