package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pasarlink/pasar-api/internal/models"
)

// ChatRepository handles data access for support chat messages.
type ChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create appends a message to a conversation.
func (r *ChatRepository) Create(msg *models.ChatMessage) error {
	const q = `
		INSERT INTO chat_messages (conversation_id, user_id, sender, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowx(q,
		msg.ConversationID,
		msg.UserID,
		msg.Sender,
		msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// ListByConversation returns a conversation's messages oldest first.
func (r *ChatRepository) ListByConversation(conversationID string) ([]models.ChatMessage, error) {
	const q = `SELECT * FROM chat_messages WHERE conversation_id = $1 ORDER BY created_at, id`
	var messages []models.ChatMessage
	if err := r.db.Select(&messages, q, conversationID); err != nil {
		return nil, err
	}
	return messages, nil
}

// ConversationSummary is one row of the admin inbox.
type ConversationSummary struct {
	ConversationID string    `db:"conversation_id" json:"conversationId"`
	UserID         *int      `db:"user_id" json:"userId,omitempty"`
	LastBody       string    `db:"last_body" json:"lastBody"`
	LastSender     string    `db:"last_sender" json:"lastSender"`
	LastAt         time.Time `db:"last_at" json:"lastAt"`
	UnreadCount    int       `db:"unread_count" json:"unreadCount"`
}

// ListConversations returns the admin inbox: one row per conversation with
// the latest message and the count of unread customer messages.
func (r *ChatRepository) ListConversations(limit int) ([]ConversationSummary, error) {
	const q = `
		SELECT DISTINCT ON (conversation_id)
			conversation_id,
			user_id,
			body AS last_body,
			sender AS last_sender,
			created_at AS last_at,
			(SELECT COUNT(1) FROM chat_messages u
				WHERE u.conversation_id = m.conversation_id
				AND u.sender = 'customer' AND u.read_at IS NULL) AS unread_count
		FROM chat_messages m
		ORDER BY conversation_id, created_at DESC
		LIMIT $1`

	var conversations []ConversationSummary
	if err := r.db.Select(&conversations, q, limit); err != nil {
		return nil, err
	}
	return conversations, nil
}

// MarkRead marks a conversation's messages from the given sender as read.
func (r *ChatRepository) MarkRead(conversationID string, sender models.ChatSender) error {
	const q = `
		UPDATE chat_messages SET read_at = NOW()
		WHERE conversation_id = $1 AND sender = $2 AND read_at IS NULL`
	_, err := r.db.Exec(q, conversationID, sender)
	return err
}
