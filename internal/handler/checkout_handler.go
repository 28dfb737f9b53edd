package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CheckoutHandler handles checkout, order lookup, and shipping quotes.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	cartService     *service.CartService
	shippingService *service.ShippingService
	authService     *service.AuthService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(
	checkoutService *service.CheckoutService,
	cartService *service.CartService,
	shippingService *service.ShippingService,
	authService *service.AuthService,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		shippingService: shippingService,
		authService:     authService,
	}
}

type rateRequest struct {
	Postcode string          `json:"postcode" binding:"required"`
	WeightKG decimal.Decimal `json:"weightKg" binding:"required"`
}

// GetShippingRates handles POST /v1/checkout/rates
func (h *CheckoutHandler) GetShippingRates(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}
	rates, err := h.shippingService.GetRates(c.Request.Context(), req.Postcode, req.WeightKG)
	if err != nil {
		utils.Error(c, 502, "COURIER_ERROR", "Failed to get shipping rates")
		return
	}
	utils.Success(c, 200, "Rates retrieved successfully", gin.H{"rates": rates})
}

// Checkout handles POST /v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	var user *models.User
	if userID := middleware.UserID(c); userID != nil {
		u, err := h.authService.GetProfile(*userID)
		if err != nil {
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load profile")
			return
		}
		user = u
	}

	cart, err := h.cartService.GetOrCreate(c.Request.Context(), middleware.CartToken(c), middleware.UserID(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), cart, user, input)
	if err != nil {
		switch err {
		case utils.ErrCartEmpty:
			utils.Error(c, 400, "CART_EMPTY", "Cart is empty")
		case utils.ErrOutOfStock:
			utils.Error(c, 409, "OUT_OF_STOCK", "One or more items are out of stock")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to place order")
		}
		return
	}

	utils.Success(c, 201, "Order placed", result)
}

// GetOrder handles GET /v1/orders/:orderNo
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, receipt, err := h.checkoutService.GetOrder(c.Param("orderNo"))
	if err != nil {
		if err == utils.ErrOrderNotFound {
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get order")
		return
	}

	// Guests can look up any order by its (unguessable) number; logged-in
	// customers may only see their own.
	if userID := middleware.UserID(c); userID != nil && order.UserID != nil && *order.UserID != *userID {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	utils.Success(c, 200, "Order retrieved successfully", gin.H{
		"order":   order,
		"receipt": receipt,
	})
}

// ListMyOrders handles GET /v1/orders
func (h *CheckoutHandler) ListMyOrders(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}
	orders, err := h.checkoutService.ListUserOrders(*userID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{"orders": orders})
}

// GetTracking handles GET /v1/orders/:orderNo/tracking
func (h *CheckoutHandler) GetTracking(c *gin.Context) {
	shipment, tracking, err := h.shippingService.GetTracking(c.Request.Context(), c.Param("orderNo"))
	if err != nil {
		switch err {
		case utils.ErrOrderNotFound:
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		case utils.ErrShipmentNotFound:
			utils.Error(c, 404, "SHIPMENT_NOT_FOUND", "Order has not shipped yet")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get tracking")
		}
		return
	}
	utils.Success(c, 200, "Tracking retrieved successfully", gin.H{
		"shipment": shipment,
		"tracking": tracking,
	})
}
