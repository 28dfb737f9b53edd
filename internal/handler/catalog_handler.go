package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CatalogHandler handles public catalog endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
	authService    *service.AuthService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, authService *service.AuthService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, authService: authService}
}

// isMember resolves whether the requester sees member pricing.
func (h *CatalogHandler) isMember(c *gin.Context) bool {
	userID := middleware.UserID(c)
	if userID == nil {
		return false
	}
	user, err := h.authService.GetProfile(*userID)
	if err != nil {
		return false
	}
	return user.IsMember
}

// GetProducts handles GET /v1/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")

	page := 1
	limit := 24
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	products, total, err := h.catalogService.ListProducts(category, search, page, limit, h.isMember(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	}, page, limit, total)
}

// GetProduct handles GET /v1/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("slug"), h.isMember(c))
	if err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get product")
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", gin.H{"product": product})
}

// GetCategories handles GET /v1/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{"categories": categories})
}
