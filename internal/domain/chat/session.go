// Package chat composes conversation authorization, message history and the
// realtime hub into the observable chat behavior.
package chat

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/conversation"
	"fixitnow/services/marketplace-api/internal/domain/message"
	"fixitnow/services/marketplace-api/internal/realtime"
)

// Controller owns the chat composition rules.
type Controller struct {
	authorizer *conversation.Authorizer
	history    message.Service
	hub        *realtime.Hub
	log        zerolog.Logger
}

// NewController creates a chat controller.
func NewController(authorizer *conversation.Authorizer, history message.Service, hub *realtime.Hub, log zerolog.Logger) *Controller {
	return &Controller{
		authorizer: authorizer,
		history:    history,
		hub:        hub,
		log:        log.With().Str("component", "chat-controller").Logger(),
	}
}

// Post appends the message to history and then pushes it onto the live
// channel. Append always comes first: a reload reconstructs the full thread
// even when the live push is dropped. A publish failure after a successful
// append never fails the call.
func (c *Controller) Post(ctx context.Context, params message.AppendParams) (*message.Message, error) {
	m, err := c.history.Append(ctx, params)
	if err != nil {
		return nil, err
	}
	c.hub.Publish(*m)
	return m, nil
}

// Open verifies the conversation is authorized against fresh bid state, seeds
// the session with the history snapshot and subscribes it to live delivery.
func (c *Controller) Open(ctx context.Context, userID, peerID, bidID string) (*Session, error) {
	grant, err := c.authorizer.Authorize(ctx, userID, peerID, bidID)
	if err != nil {
		return nil, err
	}

	history, err := c.history.Fetch(ctx, userID, peerID, bidID)
	if err != nil {
		return nil, err
	}

	// The hub routes an event only to its receiver, so this feed never
	// carries the user's own sends back; the history+live merge cannot
	// duplicate an optimistically appended message.
	sub := c.hub.Subscribe(userID, bidID)

	c.log.Info().
		Str("user_id", userID).
		Str("peer_id", peerID).
		Str("bid_id", bidID).
		Int("history_len", len(history)).
		Msg("chat session opened")

	return &Session{
		controller: c,
		grant:      grant,
		userID:     userID,
		peerID:     peerID,
		history:    history,
		sub:        sub,
	}, nil
}

// Session is one open chat screen for one user.
type Session struct {
	controller *Controller
	grant      *conversation.Grant
	userID     string
	peerID     string
	history    []*message.Message
	sub        *realtime.Subscription

	closeOnce sync.Once
}

// History returns the ordered snapshot taken when the session opened.
func (s *Session) History() []*message.Message {
	return s.history
}

// Events returns the live feed, already filtered to this user and bid.
func (s *Session) Events() <-chan message.Message {
	return s.sub.Events()
}

// BidID returns the conversation scope.
func (s *Session) BidID() string {
	return s.grant.BidID
}

// Send appends the text to history and pushes it to the peer's live feed.
func (s *Session) Send(ctx context.Context, text string) (*message.Message, error) {
	return s.controller.Post(ctx, message.AppendParams{
		Sender:   s.userID,
		Receiver: s.peerID,
		Text:     text,
		BidID:    s.grant.BidID,
	})
}

// Close releases the live subscription. Idempotent; must be called on every
// exit path from a chat screen.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.sub.Close()
	})
}
