package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CartHandler handles cart endpoints for guests and logged-in customers.
type CartHandler struct {
	cartService *service.CartService
	authService *service.AuthService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService, authService *service.AuthService) *CartHandler {
	return &CartHandler{cartService: cartService, authService: authService}
}

// resolve loads the requester's cart and membership state.
func (h *CartHandler) resolve(c *gin.Context) (*models.Cart, bool, error) {
	userID := middleware.UserID(c)
	isMember := false
	if userID != nil {
		if user, err := h.authService.GetProfile(*userID); err == nil {
			isMember = user.IsMember
		}
	}
	cart, err := h.cartService.GetOrCreate(c.Request.Context(), middleware.CartToken(c), userID)
	if err != nil {
		return nil, false, err
	}
	middleware.SetCartCookie(c, cart.Token)
	return cart, isMember, nil
}

// respondWithCart evaluates the cart and writes the full summary.
func (h *CartHandler) respondWithCart(c *gin.Context, cart *models.Cart, isMember bool, message string) {
	summary, err := h.cartService.Evaluate(c.Request.Context(), cart, isMember)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to evaluate cart")
		return
	}
	utils.Success(c, 200, message, gin.H{
		"cartToken": cart.Token,
		"cart":      summary,
	})
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, isMember, err := h.resolve(c)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}
	h.respondWithCart(c, cart, isMember, "Cart retrieved successfully")
}

type cartItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	cart, isMember, err := h.resolve(c)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}
	if err := h.cartService.AddItem(c.Request.Context(), cart, req.ProductID, req.Quantity); err != nil {
		switch err {
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case utils.ErrOutOfStock:
			utils.Error(c, 409, "OUT_OF_STOCK", "Not enough stock")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to add item")
		}
		return
	}
	h.respondWithCart(c, cart, isMember, "Item added")
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := paramInt(c, "productId")
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	cart, isMember, err := h.resolve(c)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}
	if err := h.cartService.SetQuantity(c.Request.Context(), cart, productID, req.Quantity); err != nil {
		switch err {
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case utils.ErrOutOfStock:
			utils.Error(c, 409, "OUT_OF_STOCK", "Not enough stock")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update item")
		}
		return
	}
	h.respondWithCart(c, cart, isMember, "Cart updated")
}

// RemoveItem handles DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := paramInt(c, "productId")
	if !ok {
		return
	}

	cart, isMember, err := h.resolve(c)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}
	if err := h.cartService.SetQuantity(c.Request.Context(), cart, productID, 0); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to remove item")
		return
	}
	h.respondWithCart(c, cart, isMember, "Item removed")
}

// Clear handles DELETE /v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	cart, isMember, err := h.resolve(c)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}
	if err := h.cartService.Clear(c.Request.Context(), cart); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to clear cart")
		return
	}
	h.respondWithCart(c, cart, isMember, "Cart cleared")
}
