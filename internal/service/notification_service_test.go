package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/pricing"
)

func TestRenderOrderConfirmation(t *testing.T) {
	order := &models.Order{
		OrderNo:     "PL-20260831-ABC123",
		Name:        "Aisyah",
		Subtotal:    decimal.RequireFromString("75.80"),
		ShippingFee: decimal.RequireFromString("8.50"),
		Total:       decimal.RequireFromString("84.30"),
		Items: []models.OrderItem{
			{ProductName: "Sambal Nyet", Quantity: 2, LineTotal: decimal.RequireFromString("35.80"), PriceKind: pricing.KindPromotional},
			{ProductName: "Kopi O Kaw", Quantity: 1, LineTotal: decimal.RequireFromString("40.00"), PriceKind: pricing.KindRegular},
		},
	}
	receipt := &models.Receipt{
		ReceiptNo:  "RC-20260831-XYZ789",
		FooterText: "SSM No. 123456-A",
		IssuedAt:   time.Now(),
	}

	subject, body := renderOrderConfirmation(order, receipt)

	assert.Equal(t, "Order PL-20260831-ABC123 confirmed", subject)
	assert.Contains(t, body, "Hi Aisyah")
	assert.Contains(t, body, "2x Sambal Nyet")
	assert.Contains(t, body, "RM 35.80")
	assert.Contains(t, body, "Subtotal: RM 75.80")
	assert.Contains(t, body, "Shipping: RM 8.50")
	assert.Contains(t, body, "Total: RM 84.30")
	assert.Contains(t, body, "Receipt: RC-20260831-XYZ789")
	assert.Contains(t, body, "SSM No. 123456-A")
}

func TestRenderOrderConfirmationWithoutReceipt(t *testing.T) {
	order := &models.Order{OrderNo: "PL-1", Name: "Lim"}

	_, body := renderOrderConfirmation(order, nil)

	assert.NotContains(t, body, "Receipt:")
	assert.Contains(t, body, "Terima kasih")
}
