package service

import (
	"github.com/google/uuid"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/sse"
)

// ChatService handles the customer support chat. Messages persist in
// Postgres; connected listeners get them live over SSE; the admin Telegram
// channel is pinged about new customer messages.
type ChatService struct {
	chatRepo  *repository.ChatRepository
	notifySvc *NotificationService
	notifier  sse.Notifier
}

// NewChatService constructs a new ChatService.
func NewChatService(chatRepo *repository.ChatRepository, notifySvc *NotificationService, notifier sse.Notifier) *ChatService {
	return &ChatService{chatRepo: chatRepo, notifySvc: notifySvc, notifier: notifier}
}

// StartConversation mints a conversation id. Guests keep it client-side.
func (s *ChatService) StartConversation() string {
	return uuid.New().String()
}

// PostCustomerMessage appends a customer message and alerts support.
func (s *ChatService) PostCustomerMessage(conversationID string, userID *int, body string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Sender:         models.SenderCustomer,
		Body:           body,
	}
	if err := s.chatRepo.Create(msg); err != nil {
		return nil, err
	}
	s.notifier.NotifyChatMessage(msg)
	s.notifySvc.EnqueueChatAlert(msg)
	return msg, nil
}

// PostAdminReply appends a support reply and marks the customer's messages
// in the conversation as read.
func (s *ChatService) PostAdminReply(conversationID, body string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ConversationID: conversationID,
		Sender:         models.SenderAdmin,
		Body:           body,
	}
	if err := s.chatRepo.Create(msg); err != nil {
		return nil, err
	}
	if err := s.chatRepo.MarkRead(conversationID, models.SenderCustomer); err != nil {
		return nil, err
	}
	s.notifier.NotifyChatMessage(msg)
	return msg, nil
}

// GetConversation returns a conversation's messages oldest first.
func (s *ChatService) GetConversation(conversationID string) ([]models.ChatMessage, error) {
	return s.chatRepo.ListByConversation(conversationID)
}

// GetInbox returns the admin inbox of recent conversations.
func (s *ChatService) GetInbox(limit int) ([]repository.ConversationSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.chatRepo.ListConversations(limit)
}
