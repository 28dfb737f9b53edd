package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/pricing"
)

// OrderStatus tracks an order through payment and fulfilment.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order captures a checkout. Totals and the qualifying amount are frozen at
// checkout time from the cart aggregation; membership accrual on payment uses
// the stored qualifying total, not a recomputation.
type Order struct {
	ID              int             `db:"id" json:"-"`
	OrderNo         string          `db:"order_no" json:"orderNo"`
	UserID          *int            `db:"user_id" json:"-"`
	Email           string          `db:"email" json:"email"`
	Name            string          `db:"name" json:"name"`
	Phone           string          `db:"phone" json:"phone"`
	ShippingAddress string          `db:"shipping_address" json:"shippingAddress"`
	Status          OrderStatus     `db:"status" json:"status"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	ShippingFee     decimal.Decimal `db:"shipping_fee" json:"shippingFee"`
	Total           decimal.Decimal `db:"total" json:"total"`
	QualifyingTotal decimal.Decimal `db:"qualifying_total" json:"qualifyingTotal"`
	PaymentBillID   *string         `db:"payment_bill_id" json:"-"`
	PaidAt          *time.Time      `db:"paid_at" json:"paidAt,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"-"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem snapshots a cart line at checkout, including which price tier
// won and whether the line counted toward membership.
type OrderItem struct {
	ID           int               `db:"id" json:"-"`
	OrderID      int               `db:"order_id" json:"-"`
	ProductID    int               `db:"product_id" json:"productId"`
	ProductName  string            `db:"product_name" json:"productName"`
	Quantity     int               `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal   `db:"unit_price" json:"unitPrice"`
	PriceKind    pricing.PriceKind `db:"price_kind" json:"priceKind"`
	LineTotal    decimal.Decimal   `db:"line_total" json:"lineTotal"`
	IsQualifying bool              `db:"is_qualifying" json:"qualifiesForMembership"`
}

// Receipt is the customer-facing record generated when an order is paid.
// FooterText comes from the admin-configurable receipt settings.
type Receipt struct {
	ID         int       `db:"id" json:"id"`
	OrderID    int       `db:"order_id" json:"-"`
	ReceiptNo  string    `db:"receipt_no" json:"receiptNo"`
	FooterText string    `db:"footer_text" json:"footerText"`
	IssuedAt   time.Time `db:"issued_at" json:"issuedAt"`
}
