package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminCMSHandler handles page and FAQ management.
type AdminCMSHandler struct {
	cmsService *service.CMSService
}

// NewAdminCMSHandler constructs an AdminCMSHandler.
func NewAdminCMSHandler(cmsService *service.CMSService) *AdminCMSHandler {
	return &AdminCMSHandler{cmsService: cmsService}
}

// GetPages handles GET /v1/admin/pages?kind=landing|click
func (h *AdminCMSHandler) GetPages(c *gin.Context) {
	pages, err := h.cmsService.ListAdminPages(c.Query("kind"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get pages")
		return
	}
	utils.Success(c, 200, "Pages retrieved successfully", gin.H{"pages": pages})
}

// GetPage handles GET /v1/admin/pages/:id
func (h *AdminCMSHandler) GetPage(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	page, err := h.cmsService.GetAdminPage(id)
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

// CreatePage handles POST /v1/admin/pages
func (h *AdminCMSHandler) CreatePage(c *gin.Context) {
	var page models.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.cmsService.CreatePage(&page); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create page")
		return
	}
	utils.Success(c, 201, "Page created", gin.H{"page": page})
}

// UpdatePage handles PUT /v1/admin/pages/:id
func (h *AdminCMSHandler) UpdatePage(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var page models.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	page.ID = id
	if err := h.cmsService.UpdatePage(&page); err != nil {
		if err == utils.ErrPageNotFound {
			utils.Error(c, 404, "PAGE_NOT_FOUND", "Page not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update page")
		return
	}
	utils.Success(c, 200, "Page updated", gin.H{"page": page})
}

// DeletePage handles DELETE /v1/admin/pages/:id
func (h *AdminCMSHandler) DeletePage(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.cmsService.DeletePage(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete page")
		return
	}
	utils.Success(c, 200, "Page deleted", nil)
}

// GetFAQs handles GET /v1/admin/faqs
func (h *AdminCMSHandler) GetFAQs(c *gin.Context) {
	faqs, err := h.cmsService.ListAdminFAQs()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get FAQs")
		return
	}
	utils.Success(c, 200, "FAQs retrieved successfully", gin.H{"faqs": faqs})
}

// CreateFAQ handles POST /v1/admin/faqs
func (h *AdminCMSHandler) CreateFAQ(c *gin.Context) {
	var faq models.FAQ
	if err := c.ShouldBindJSON(&faq); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.cmsService.CreateFAQ(&faq); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create FAQ")
		return
	}
	utils.Success(c, 201, "FAQ created", gin.H{"faq": faq})
}

// UpdateFAQ handles PUT /v1/admin/faqs/:id
func (h *AdminCMSHandler) UpdateFAQ(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var faq models.FAQ
	if err := c.ShouldBindJSON(&faq); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	faq.ID = id
	if err := h.cmsService.UpdateFAQ(&faq); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update FAQ")
		return
	}
	utils.Success(c, 200, "FAQ updated", gin.H{"faq": faq})
}

// DeleteFAQ handles DELETE /v1/admin/faqs/:id
func (h *AdminCMSHandler) DeleteFAQ(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.cmsService.DeleteFAQ(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete FAQ")
		return
	}
	utils.Success(c, 200, "FAQ deleted", nil)
}
