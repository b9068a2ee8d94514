// Package message holds the persisted chat history for bid conversations.
// History is append-only and is the system of record; live delivery is an
// optimization layered on top of it.
package message

import "time"

// Message is one chat message between a bid's client and provider.
type Message struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	BidID     string    `json:"bid"`
	CreatedAt time.Time `json:"created_at"`
}

// AppendParams contains parameters for appending a message to history.
type AppendParams struct {
	Sender   string
	Receiver string
	Text     string
	BidID    string
}
