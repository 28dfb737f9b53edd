package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminChatHandler handles the support side of the chat.
type AdminChatHandler struct {
	chatService *service.ChatService
}

// NewAdminChatHandler constructs an AdminChatHandler.
func NewAdminChatHandler(chatService *service.ChatService) *AdminChatHandler {
	return &AdminChatHandler{chatService: chatService}
}

// GetInbox handles GET /v1/admin/chat
func (h *AdminChatHandler) GetInbox(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	conversations, err := h.chatService.GetInbox(limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load inbox")
		return
	}
	utils.Success(c, 200, "Inbox retrieved successfully", gin.H{"conversations": conversations})
}

// GetConversation handles GET /v1/admin/chat/:conversationId
func (h *AdminChatHandler) GetConversation(c *gin.Context) {
	messages, err := h.chatService.GetConversation(c.Param("conversationId"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load conversation")
		return
	}
	utils.Success(c, 200, "Messages retrieved successfully", gin.H{"messages": messages})
}

// Reply handles POST /v1/admin/chat/:conversationId/messages
func (h *AdminChatHandler) Reply(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	msg, err := h.chatService.PostAdminReply(c.Param("conversationId"), req.Body)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to send reply")
		return
	}
	utils.Success(c, 201, "Reply sent", gin.H{"message": msg})
}
