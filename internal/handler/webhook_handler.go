package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
	"github.com/pasarlink/pasar-api/pkg/gateway"
)

// WebhookHandler receives callbacks from the payment gateway and the courier.
type WebhookHandler struct {
	checkoutService *service.CheckoutService
	shippingService *service.ShippingService
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(checkoutService *service.CheckoutService, shippingService *service.ShippingService) *WebhookHandler {
	return &WebhookHandler{checkoutService: checkoutService, shippingService: shippingService}
}

// PaymentCallback handles POST /v1/webhooks/payment
// The gateway posts form-encoded bill state changes.
func (h *WebhookHandler) PaymentCallback(c *gin.Context) {
	var payload gateway.CallbackPayload
	if err := c.ShouldBind(&payload); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Malformed callback payload")
		return
	}

	if err := h.checkoutService.HandlePaymentCallback(c.Request.Context(), payload); err != nil {
		switch err {
		case utils.ErrInvalidSignature:
			utils.Error(c, 401, "INVALID_SIGNATURE", "Callback signature mismatch")
		case utils.ErrOrderNotFound:
			// Acknowledge unknown bills so the gateway stops retrying.
			log.Warn().Str("bill_id", payload.BillID).Msg("Payment callback for unknown bill")
			utils.Success(c, 200, "OK", nil)
		default:
			log.Error().Err(err).Str("bill_id", payload.BillID).Msg("Payment callback failed")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to process callback")
		}
		return
	}
	utils.Success(c, 200, "OK", nil)
}

type courierWebhookPayload struct {
	TrackingNo string `json:"awb" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

// CourierCallback handles POST /v1/webhooks/courier
// The courier signs the raw body with HMAC-SHA256 in X-Signature.
func (h *WebhookHandler) CourierCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Failed to read body")
		return
	}
	if !h.shippingService.VerifyWebhook(body, c.GetHeader("X-Signature")) {
		utils.Error(c, 401, "INVALID_SIGNATURE", "Webhook signature mismatch")
		return
	}

	var payload courierWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.TrackingNo == "" || payload.Status == "" {
		utils.Error(c, 400, "VALIDATION_ERROR", "Malformed webhook payload")
		return
	}

	status := mapWebhookStatus(payload.Status)
	if status == "" {
		// Unknown statuses are acknowledged and ignored.
		utils.Success(c, 200, "OK", nil)
		return
	}

	if err := h.shippingService.ApplyTrackingUpdate(payload.TrackingNo, status); err != nil {
		if err == utils.ErrShipmentNotFound {
			log.Warn().Str("tracking_no", payload.TrackingNo).Msg("Courier webhook for unknown shipment")
			utils.Success(c, 200, "OK", nil)
			return
		}
		log.Error().Err(err).Str("tracking_no", payload.TrackingNo).Msg("Courier webhook failed")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to process webhook")
		return
	}
	utils.Success(c, 200, "OK", nil)
}

func mapWebhookStatus(raw string) models.ShipmentStatus {
	switch raw {
	case "booked":
		return models.ShipmentBooked
	case "picked_up":
		return models.ShipmentPickedUp
	case "in_transit":
		return models.ShipmentInTransit
	case "delivered":
		return models.ShipmentDelivered
	case "failed":
		return models.ShipmentFailed
	default:
		return ""
	}
}
