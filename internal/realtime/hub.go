// Package realtime provides best-effort live delivery of chat messages.
//
// The Hub is an explicitly owned resource: the application constructs one and
// hands it to whoever needs it. Delivery is a hint, not the ordering
// authority - persisted history remains the system of record, so a dropped
// event costs at most a refresh.
package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/message"
	"fixitnow/services/marketplace-api/internal/infrastructure/metrics"
)

// DefaultBufferSize is the per-subscription event buffer.
const DefaultBufferSize = 32

type subKey struct {
	userID string
	bidID  string
}

// Hub fans out messages to live subscriptions.
// Thread-safe via sync.RWMutex.
type Hub struct {
	mu         sync.RWMutex
	subs       map[subKey]*Subscription
	bufferSize int
	closed     bool
	log        zerolog.Logger
}

// NewHub creates a hub with the given per-subscription buffer size.
func NewHub(bufferSize int, log zerolog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		subs:       make(map[subKey]*Subscription),
		bufferSize: bufferSize,
		log:        log.With().Str("component", "realtime-hub").Logger(),
	}
}

// Subscribe registers a live feed for the user scoped to one bid. A prior
// subscription for the same (user, bid) pair is closed and replaced, so
// re-entering a chat screen never leaks a duplicate live subscription.
func (h *Hub) Subscribe(userID, bidID string) *Subscription {
	key := subKey{userID: userID, bidID: bidID}

	sub := &Subscription{
		userID: userID,
		bidID:  bidID,
		events: make(chan message.Message, h.bufferSize),
		hub:    h,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.markDetached()
		close(sub.events)
		return sub
	}
	prior := h.subs[key]
	h.subs[key] = sub
	h.mu.Unlock()

	if prior != nil {
		prior.Close()
	}

	metrics.ActiveSubscriptions.Inc()
	h.log.Debug().Str("user_id", userID).Str("bid_id", bidID).Msg("subscription opened")
	return sub
}

// Publish delivers the message to the subscription matching both the receiver
// and the bid. Events are dropped rather than blocking a publisher on a slow
// consumer.
func (h *Hub) Publish(msg message.Message) {
	key := subKey{userID: msg.Receiver, bidID: msg.BidID}

	h.mu.RLock()
	sub := h.subs[key]
	h.mu.RUnlock()

	if sub == nil {
		metrics.LiveDeliveries.WithLabelValues(metrics.OutcomeNoReceiver).Inc()
		return
	}

	select {
	case sub.events <- msg:
		metrics.LiveDeliveries.WithLabelValues(metrics.OutcomeDelivered).Inc()
	default:
		metrics.LiveDeliveries.WithLabelValues(metrics.OutcomeDropped).Inc()
		h.log.Warn().
			Str("user_id", msg.Receiver).
			Str("bid_id", msg.BidID).
			Msg("live delivery dropped: subscription buffer full")
	}
}

// Close tears down every subscription. Safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// remove detaches the subscription if it is still the registered one for its
// key. A replaced subscription must not unregister its successor.
func (h *Hub) remove(sub *Subscription) {
	key := subKey{userID: sub.userID, bidID: sub.bidID}

	h.mu.Lock()
	if h.subs[key] == sub {
		delete(h.subs, key)
	}
	h.mu.Unlock()
}

// Subscription is one live feed scoped to a (user, bid) pair.
type Subscription struct {
	userID   string
	bidID    string
	events   chan message.Message
	hub      *Hub
	detached bool

	closeOnce sync.Once
}

// Events returns the inbound feed. The channel is closed when the
// subscription is closed or replaced.
func (s *Subscription) Events() <-chan message.Message {
	return s.events
}

// UserID returns the subscriber.
func (s *Subscription) UserID() string { return s.userID }

// BidID returns the conversation scope.
func (s *Subscription) BidID() string { return s.bidID }

// Close detaches the subscription from the hub and closes the event channel.
// Idempotent: closing twice, or closing a subscription created against an
// already-closed hub, is a no-op.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if !s.detached {
			s.hub.remove(s)
			metrics.ActiveSubscriptions.Dec()
			close(s.events)
		}
	})
}

// markDetached flags a subscription that was never registered, so Close does
// not unregister or double-close.
func (s *Subscription) markDetached() {
	s.detached = true
	s.closeOnce.Do(func() {})
}
