package entities

import (
	"time"

	"fixitnow/services/marketplace-api/internal/domain/message"
)

// Message stores each chat message of a bid conversation.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PublicID string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Sender   string `gorm:"type:varchar(64);index:idx_message_sender_bid;not null"`
	Receiver string `gorm:"type:varchar(64);index:idx_message_receiver_bid;not null"`
	Text     string `gorm:"type:text;not null"`
	BidID    string `gorm:"type:varchar(50);index:idx_message_sender_bid;index:idx_message_receiver_bid;not null"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// EtoD converts database entity to domain model
func (m *Message) EtoD() *message.Message {
	return &message.Message{
		ID:        m.ID,
		PublicID:  m.PublicID,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Text:      m.Text,
		BidID:     m.BidID,
		CreatedAt: m.CreatedAt,
	}
}

// NewSchemaMessage creates a database entity from domain model
func NewSchemaMessage(m *message.Message) *Message {
	return &Message{
		ID:        m.ID,
		PublicID:  m.PublicID,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Text:      m.Text,
		BidID:     m.BidID,
		CreatedAt: m.CreatedAt,
	}
}
