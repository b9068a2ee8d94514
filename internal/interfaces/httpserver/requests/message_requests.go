package requests

// SendMessageRequest represents a chat message to post on a bid conversation.
// Sender is optional; when present it must match the authenticated user.
type SendMessageRequest struct {
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver" binding:"required"`
	BidID    string `json:"bid" binding:"required"`
	Text     string `json:"text" binding:"required"`
}
