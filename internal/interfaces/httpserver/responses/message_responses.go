package responses

import (
	"time"

	"fixitnow/services/marketplace-api/internal/domain/message"
)

// MessageResponse is the public shape of a chat message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	BidID     string    `json:"bid"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageListResponse wraps an ordered message thread.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// MapMessageToResponse converts a domain message to its response shape.
func MapMessageToResponse(m *message.Message) MessageResponse {
	return MessageResponse{
		ID:        m.PublicID,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Text:      m.Text,
		BidID:     m.BidID,
		CreatedAt: m.CreatedAt,
	}
}

// MapMessagesToListResponse converts a thread, never returning a nil list.
func MapMessagesToListResponse(messages []*message.Message) MessageListResponse {
	items := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, MapMessageToResponse(m))
	}
	return MessageListResponse{Messages: items}
}
