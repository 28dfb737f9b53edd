package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminOrderHandler handles order management and shipment booking.
type AdminOrderHandler struct {
	checkoutService *service.CheckoutService
	shippingService *service.ShippingService
}

// NewAdminOrderHandler constructs an AdminOrderHandler.
func NewAdminOrderHandler(checkoutService *service.CheckoutService, shippingService *service.ShippingService) *AdminOrderHandler {
	return &AdminOrderHandler{checkoutService: checkoutService, shippingService: shippingService}
}

// GetOrders handles GET /v1/admin/orders
func (h *AdminOrderHandler) GetOrders(c *gin.Context) {
	filter := &repository.AdminOrderFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.AddDate(0, 0, 1)
			filter.To = &end
		}
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

	result, err := h.checkoutService.GetAdminOrders(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get orders")
		return
	}
	utils.SuccessWithPagination(c, 200, "Orders retrieved successfully", gin.H{
		"orders": result.Orders,
	}, result.Page, result.Limit, result.TotalItems)
}

// GetOrder handles GET /v1/admin/orders/:orderNo
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	order, receipt, err := h.checkoutService.GetOrder(c.Param("orderNo"))
	if err != nil {
		if err == utils.ErrOrderNotFound {
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get order")
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", gin.H{
		"order":   order,
		"receipt": receipt,
	})
}

// GetStats handles GET /v1/admin/orders/stats?days=30
func (h *AdminOrderHandler) GetStats(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	stats, err := h.checkoutService.GetOrderStats(time.Now().AddDate(0, 0, -days))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get stats")
		return
	}
	utils.Success(c, 200, "Stats retrieved successfully", gin.H{"stats": stats})
}

type bookShipmentRequest struct {
	CourierCode string          `json:"courierCode" binding:"required"`
	Postcode    string          `json:"postcode" binding:"required"`
	WeightKG    decimal.Decimal `json:"weightKg" binding:"required"`
}

// BookShipment handles POST /v1/admin/orders/:orderNo/shipment
func (h *AdminOrderHandler) BookShipment(c *gin.Context) {
	var req bookShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	shipment, err := h.shippingService.BookShipment(c.Request.Context(), c.Param("orderNo"), req.CourierCode, req.Postcode, req.WeightKG)
	if err != nil {
		switch err {
		case utils.ErrOrderNotFound:
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		case utils.ErrOrderNotPayable:
			utils.Error(c, 409, "ORDER_NOT_PAYABLE", "Order is not in paid status")
		default:
			utils.Error(c, 502, "COURIER_ERROR", "Failed to book shipment")
		}
		return
	}
	utils.Success(c, 201, "Shipment booked", gin.H{"shipment": shipment})
}
