package message

import "context"

// Repository persists messages.
type Repository interface {
	// Create inserts the message record.
	Create(ctx context.Context, m *Message) error

	// FindThread returns all messages exchanged between the two users on the
	// bid, ascending by creation time (insertion order breaks ties).
	// Participants match in either direction.
	FindThread(ctx context.Context, userA, userB, bidID string) ([]*Message, error)
}
