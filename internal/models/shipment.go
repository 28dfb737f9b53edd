package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus mirrors the courier's consignment lifecycle.
type ShipmentStatus string

const (
	ShipmentBooked    ShipmentStatus = "booked"
	ShipmentPickedUp  ShipmentStatus = "picked_up"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentFailed    ShipmentStatus = "failed"
)

// Shipment links an order to a courier consignment. The tracking worker and
// the courier webhook both update Status; LastCheckedAt throttles polling.
type Shipment struct {
	ID            int             `db:"id" json:"id"`
	OrderID       int             `db:"order_id" json:"-"`
	CourierCode   string          `db:"courier_code" json:"courierCode"`
	ServiceName   string          `db:"service_name" json:"serviceName"`
	TrackingNo    string          `db:"tracking_no" json:"trackingNo"`
	Fee           decimal.Decimal `db:"fee" json:"fee"`
	Status        ShipmentStatus  `db:"status" json:"status"`
	LastCheckedAt *time.Time      `db:"last_checked_at" json:"-"`
	DeliveredAt   *time.Time      `db:"delivered_at" json:"deliveredAt,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"-"`
}
