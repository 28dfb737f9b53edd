package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/pricing"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminSettingsHandler handles membership and receipt settings.
type AdminSettingsHandler struct {
	membershipService *service.MembershipService
}

// NewAdminSettingsHandler constructs an AdminSettingsHandler.
func NewAdminSettingsHandler(membershipService *service.MembershipService) *AdminSettingsHandler {
	return &AdminSettingsHandler{membershipService: membershipService}
}

// GetSettings handles GET /v1/admin/settings
func (h *AdminSettingsHandler) GetSettings(c *gin.Context) {
	cfg, err := h.membershipService.GetConfig()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get settings")
		return
	}
	footer, err := h.membershipService.GetReceiptFooter()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get settings")
		return
	}
	utils.Success(c, 200, "Settings retrieved successfully", gin.H{
		"membership":    cfg,
		"receiptFooter": footer,
	})
}

type membershipSettingsRequest struct {
	Threshold          decimal.Decimal `json:"threshold" binding:"required"`
	ExcludePromotional *bool           `json:"excludePromotional" binding:"required"`
	RequireQualifying  *bool           `json:"requireQualifying" binding:"required"`
}

// UpdateMembershipSettings handles PUT /v1/admin/settings/membership
func (h *AdminSettingsHandler) UpdateMembershipSettings(c *gin.Context) {
	var req membershipSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	cfg := pricing.MembershipConfig{
		Threshold:          req.Threshold,
		ExcludePromotional: *req.ExcludePromotional,
		RequireQualifying:  *req.RequireQualifying,
	}
	if err := h.membershipService.UpdateConfig(cfg); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update settings")
		return
	}
	utils.Success(c, 200, "Membership settings updated", gin.H{"membership": cfg})
}

type receiptFooterRequest struct {
	FooterText string `json:"footerText"`
}

// UpdateReceiptFooter handles PUT /v1/admin/settings/receipt
func (h *AdminSettingsHandler) UpdateReceiptFooter(c *gin.Context) {
	var req receiptFooterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.membershipService.SetReceiptFooter(req.FooterText); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update receipt footer")
		return
	}
	utils.Success(c, 200, "Receipt footer updated", gin.H{"receiptFooter": req.FooterText})
}
