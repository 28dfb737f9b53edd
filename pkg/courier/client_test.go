package courier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rate_checking", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req RateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "50000", req.PickupPostcode)
		assert.Equal(t, "10400", req.DeliveryPostcode)

		w.Write([]byte(`{
			"api_status": "Success",
			"result": [
				{"courier_id": "poslaju", "courier_name": "Pos Laju", "service_name": "Next Day", "price": "8.50", "delivery": "1-2"},
				{"courier_id": "jnt", "courier_name": "J&T Express", "service_name": "Standard", "price": "7.20", "delivery": "2-3"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	rates, err := client.GetRates(context.Background(), RateRequest{
		PickupPostcode:   "50000",
		DeliveryPostcode: "10400",
		WeightKG:         decimal.NewFromFloat(1.5),
	})
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "poslaju", rates[0].CourierCode)
	assert.True(t, decimal.RequireFromString("8.50").Equal(rates[0].Price))
}

func TestCreateShipment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order_create", r.URL.Path)
		w.Write([]byte(`{
			"api_status": "Success",
			"result": {"awb": "EP123456789MY", "courier_id": "poslaju", "service_name": "Next Day", "price": "8.50", "awb_pdf": "https://example/label.pdf"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	shipment, err := client.CreateShipment(context.Background(), CreateShipmentRequest{
		CourierCode: "poslaju",
		Reference:   "PL-20260831-ABC123",
	})
	require.NoError(t, err)
	assert.Equal(t, "EP123456789MY", shipment.TrackingNo)
	assert.Equal(t, "poslaju", shipment.CourierCode)
}

func TestTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tracking", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "EP123456789MY", body["awb"])

		w.Write([]byte(`{
			"api_status": "Success",
			"result": {
				"awb": "EP123456789MY",
				"latest_status": "in_transit",
				"events": [{"status": "in_transit", "description": "Departed hub", "location": "Shah Alam", "time": "2026-08-31 09:00"}]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	result, err := client.Track(context.Background(), "EP123456789MY")
	require.NoError(t, err)
	assert.Equal(t, "in_transit", result.Status)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Shah Alam", result.Events[0].Location)
}

func TestCourierErrorRemark(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"api_status": "Fail", "error_remark": "Invalid postcode"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	_, err := client.GetRates(context.Background(), RateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid postcode")
}
