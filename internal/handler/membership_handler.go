package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// MembershipHandler handles the customer membership status endpoint.
type MembershipHandler struct {
	membershipService *service.MembershipService
}

// NewMembershipHandler constructs a MembershipHandler.
func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// GetStatus handles GET /v1/membership
func (h *MembershipHandler) GetStatus(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}
	status, err := h.membershipService.GetStatus(*userID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get membership status")
		return
	}
	utils.Success(c, 200, "Membership status retrieved", gin.H{"membership": status})
}
