package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/domain/chat"
	"fixitnow/services/marketplace-api/internal/domain/conversation"
	"fixitnow/services/marketplace-api/internal/domain/message"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Bid     *BidHandler
	Message *MessageHandler
	Channel *ChannelHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	bidService bid.Service,
	messageService message.Service,
	authorizer *conversation.Authorizer,
	controller *chat.Controller,
	heartbeat time.Duration,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Bid:     NewBidHandler(bidService, log),
		Message: NewMessageHandler(controller, authorizer, messageService, log),
		Channel: NewChannelHandler(controller, heartbeat, log),
	}
}
