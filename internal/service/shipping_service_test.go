package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pasarlink/pasar-api/internal/models"
)

func TestMapCourierStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.ShipmentStatus
	}{
		{"pending", models.ShipmentBooked},
		{"booked", models.ShipmentBooked},
		{"picked_up", models.ShipmentPickedUp},
		{"collected", models.ShipmentPickedUp},
		{"in_transit", models.ShipmentInTransit},
		{"on_the_way", models.ShipmentInTransit},
		{"out_for_delivery", models.ShipmentInTransit},
		{"delivered", models.ShipmentDelivered},
		{"completed", models.ShipmentDelivered},
		{"failed", models.ShipmentFailed},
		{"returned", models.ShipmentFailed},
		{"cancelled", models.ShipmentFailed},
		{"something_new", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapCourierStatus(tt.raw), "raw=%q", tt.raw)
	}
}
