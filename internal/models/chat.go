package models

import "time"

// ChatSender distinguishes who wrote a support message.
type ChatSender string

const (
	SenderCustomer ChatSender = "customer"
	SenderAdmin    ChatSender = "admin"
)

// ChatMessage belongs to a support conversation. Conversations are keyed by
// a uuid so guests can chat before registering.
type ChatMessage struct {
	ID             int        `db:"id" json:"id"`
	ConversationID string     `db:"conversation_id" json:"conversationId"`
	UserID         *int       `db:"user_id" json:"-"`
	Sender         ChatSender `db:"sender" json:"sender"`
	Body           string     `db:"body" json:"body"`
	ReadAt         *time.Time `db:"read_at" json:"readAt,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}
