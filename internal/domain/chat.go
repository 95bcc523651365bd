package domain

import (
	"strings"
	"time"
)

// MaxMessageLength bounds chat message text in runes.
const MaxMessageLength = 2000

// ChatMessage is one direct message between two users.
type ChatMessage struct {
	ID          string
	SenderID    string
	RecipientID string
	Text        string
	CreatedAt   time.Time
}

// SendMessageRequest holds parameters for sending a direct message.
type SendMessageRequest struct {
	SenderID    string
	RecipientID string
	Text        string
}

// Validate checks that the request is well-formed.
func (r *SendMessageRequest) Validate() error {
	if err := RequireIDs("sender_id", r.SenderID, "recipient_id", r.RecipientID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Text) == "" {
		return ErrValidation("text is required")
	}
	if len([]rune(r.Text)) > MaxMessageLength {
		return ErrValidation("text exceeds %d characters", MaxMessageLength)
	}
	if r.SenderID == r.RecipientID {
		return ErrSelfReference("user %s cannot message themselves", r.SenderID)
	}
	return nil
}
