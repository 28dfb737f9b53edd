package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CMSHandler handles public content endpoints.
type CMSHandler struct {
	cmsService *service.CMSService
}

// NewCMSHandler constructs a CMSHandler.
func NewCMSHandler(cmsService *service.CMSService) *CMSHandler {
	return &CMSHandler{cmsService: cmsService}
}

// GetPage handles GET /v1/pages/:slug
func (h *CMSHandler) GetPage(c *gin.Context) {
	page, err := h.cmsService.GetPage(c.Param("slug"))
	if err != nil {
		if err == utils.ErrPageNotFound {
			utils.Error(c, 404, "PAGE_NOT_FOUND", "Page not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get page")
		return
	}
	utils.Success(c, 200, "Page retrieved successfully", gin.H{"page": page})
}

// GetFAQs handles GET /v1/faqs
func (h *CMSHandler) GetFAQs(c *gin.Context) {
	faqs, err := h.cmsService.ListFAQs()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get FAQs")
		return
	}
	utils.Success(c, 200, "FAQs retrieved successfully", gin.H{"faqs": faqs})
}
