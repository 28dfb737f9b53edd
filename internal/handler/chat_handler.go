package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/sse"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// ChatHandler handles the customer side of the support chat.
type ChatHandler struct {
	chatService *service.ChatService
	hub         *sse.Hub
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatService *service.ChatService, hub *sse.Hub) *ChatHandler {
	return &ChatHandler{chatService: chatService, hub: hub}
}

// Start handles POST /v1/chat
func (h *ChatHandler) Start(c *gin.Context) {
	conversationID := h.chatService.StartConversation()
	utils.Success(c, 201, "Conversation started", gin.H{"conversationId": conversationID})
}

type chatMessageRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// PostMessage handles POST /v1/chat/:conversationId/messages
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	msg, err := h.chatService.PostCustomerMessage(c.Param("conversationId"), middleware.UserID(c), req.Body)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to send message")
		return
	}
	utils.Success(c, 201, "Message sent", gin.H{"message": msg})
}

// GetMessages handles GET /v1/chat/:conversationId/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.chatService.GetConversation(c.Param("conversationId"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load conversation")
		return
	}
	utils.Success(c, 200, "Messages retrieved successfully", gin.H{"messages": messages})
}

// Stream handles GET /v1/chat/:conversationId/stream
// The customer listens for replies on their own conversation only.
func (h *ChatHandler) Stream(c *gin.Context) {
	conversationID := c.Param("conversationId")
	clientID := fmt.Sprintf("chat-%s-%d", conversationID, time.Now().UnixNano())

	// SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	client := h.hub.Register(clientID, conversationID)
	defer h.hub.Unregister(clientID)

	c.SSEvent("connected", gin.H{
		"conversationId": conversationID,
		"timestamp":      time.Now().Format(time.RFC3339),
	})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-client.Events:
			if !ok {
				return false
			}
			c.SSEvent("message", string(data))
			return true
		case <-time.After(30 * time.Second):
			c.SSEvent("ping", gin.H{"timestamp": time.Now().Format(time.RFC3339)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
