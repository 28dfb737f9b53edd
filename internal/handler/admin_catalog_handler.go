package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminCatalogHandler handles product and category management.
type AdminCatalogHandler struct {
	catalogService *service.CatalogService
}

// NewAdminCatalogHandler constructs an AdminCatalogHandler.
func NewAdminCatalogHandler(catalogService *service.CatalogService) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogService: catalogService}
}

// GetProducts handles GET /v1/admin/products
func (h *AdminCatalogHandler) GetProducts(c *gin.Context) {
	filter := &repository.AdminProductFilter{
		Search: c.Query("search"),
	}
	if v := c.Query("categoryId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.CategoryID = n
		}
	}
	if v := c.Query("active"); v != "" {
		b := v == "true"
		filter.IsActive = &b
	}
	if v := c.Query("promotional"); v != "" {
		b := v == "true"
		filter.Promotional = &b
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	result, err := h.catalogService.GetAdminProducts(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": result.Products,
	}, result.Page, result.Limit, result.TotalItems)
}

// GetProduct handles GET /v1/admin/products/:id
func (h *AdminCatalogHandler) GetProduct(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	product, err := h.catalogService.GetAdminProduct(id)
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

// CreateProduct handles POST /v1/admin/products
func (h *AdminCatalogHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.catalogService.CreateProduct(&product); err != nil {
		switch err {
		case utils.ErrInvalidPrice:
			utils.Error(c, 400, "INVALID_PRICE", "Price configuration is invalid")
		case utils.ErrCategoryNotFound:
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		}
		return
	}
	utils.Success(c, 201, "Product created", gin.H{"product": product})
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *AdminCatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	product.ID = id
	if err := h.catalogService.UpdateProduct(&product); err != nil {
		switch err {
		case utils.ErrInvalidPrice:
			utils.Error(c, 400, "INVALID_PRICE", "Price configuration is invalid")
		case utils.ErrCategoryNotFound:
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		}
		return
	}
	utils.Success(c, 200, "Product updated", gin.H{"product": product})
}

type statusRequest struct {
	IsActive bool `json:"isActive"`
}

// SetProductStatus handles PATCH /v1/admin/products/:id/status
func (h *AdminCatalogHandler) SetProductStatus(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.catalogService.SetProductStatus(id, req.IsActive); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product status")
		return
	}
	utils.Success(c, 200, "Product status updated", nil)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *AdminCatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// GetCategories handles GET /v1/admin/categories
func (h *AdminCatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListAllCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{"categories": categories})
}

// CreateCategory handles POST /v1/admin/categories
func (h *AdminCatalogHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.catalogService.CreateCategory(&category); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create category")
		return
	}
	utils.Success(c, 201, "Category created", gin.H{"category": category})
}

// UpdateCategory handles PUT /v1/admin/categories/:id
// Changing the qualifying flag rewrites it on all the category's products.
func (h *AdminCatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	category.ID = id
	synced, err := h.catalogService.UpdateCategory(&category)
	if err != nil {
		if err == utils.ErrCategoryNotFound {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update category")
		return
	}
	utils.Success(c, 200, "Category updated", gin.H{
		"category":        category,
		"productsSynced":  synced,
	})
}

// DeleteCategory handles DELETE /v1/admin/categories/:id
func (h *AdminCatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCategory(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete category")
		return
	}
	utils.Success(c, 200, "Category deleted", nil)
}
