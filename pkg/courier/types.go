package courier

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RateRequest asks for delivery quotes to a destination.
type RateRequest struct {
	PickupPostcode   string          `json:"pick_code"`
	DeliveryPostcode string          `json:"send_code"`
	WeightKG         decimal.Decimal `json:"weight"`
}

// Rate is one courier service quote.
type Rate struct {
	CourierCode string          `json:"courier_id"`
	CourierName string          `json:"courier_name"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
	EtaDays     string          `json:"delivery"`
}

// CreateShipmentRequest books a consignment for a paid order.
type CreateShipmentRequest struct {
	CourierCode      string          `json:"courier_id"`
	ReceiverName     string          `json:"send_name"`
	ReceiverPhone    string          `json:"send_contact"`
	ReceiverAddress  string          `json:"send_addr"`
	DeliveryPostcode string          `json:"send_code"`
	WeightKG         decimal.Decimal `json:"weight"`
	Reference        string          `json:"reference"`
}

// Shipment is the courier's booked consignment.
type Shipment struct {
	TrackingNo  string          `json:"awb"`
	CourierCode string          `json:"courier_id"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
	LabelURL    string          `json:"awb_pdf"`
}

// TrackingEvent is one checkpoint in a consignment's history.
type TrackingEvent struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Time        string `json:"time"`
}

// TrackingResult is the current tracking state of a consignment.
type TrackingResult struct {
	TrackingNo string          `json:"awb"`
	Status     string          `json:"latest_status"`
	Events     []TrackingEvent `json:"events"`
}

type apiEnvelope struct {
	Status  string          `json:"api_status"`
	Message string          `json:"error_remark"`
	Result  json.RawMessage `json:"result"`
}
