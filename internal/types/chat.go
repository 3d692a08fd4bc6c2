package types

import (
	"time"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is deliberately not a gorm model: transcripts are ephemeral and
// live only in process memory for the duration of a chat session.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}
