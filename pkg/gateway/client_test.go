package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(p CallbackPayload, key string) string {
	src := strings.Join([]string{
		"amount" + p.Amount,
		"id" + p.BillID,
		"paid_amount" + p.PaidAmount,
		"paid_at" + p.PaidAt,
		"paid" + p.Paid,
		"state" + p.State,
	}, "|")
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(src))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateBill(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/bills", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test-api-key", user)

		var req CreateBillRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "default-collection", req.CollectionID)
		assert.Equal(t, int64(15990), req.Amount)

		json.NewEncoder(w).Encode(Bill{
			ID:     "bill_abc",
			State:  "due",
			Amount: req.Amount,
			URL:    "https://pay.example/bill_abc",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-api-key", "default-collection", "sig-key")
	bill, err := client.CreateBill(context.Background(), CreateBillRequest{
		Email:  "aisyah@example.my",
		Name:   "Aisyah",
		Amount: 15990,
	})
	require.NoError(t, err)
	assert.Equal(t, "bill_abc", bill.ID)
	assert.Equal(t, "https://pay.example/bill_abc", bill.URL)
}

func TestCreateBillGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"Email is invalid"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "c", "s")
	_, err := client.CreateBill(context.Background(), CreateBillRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestVerifyCallback(t *testing.T) {
	client := NewClient("https://example.com", "k", "c", "sig-key")

	payload := CallbackPayload{
		BillID:     "bill_abc",
		Paid:       "true",
		State:      "paid",
		Amount:     "15990",
		PaidAmount: "15990",
		PaidAt:     "2026-08-31 12:00:00 +0800",
	}
	payload.Signature = signPayload(payload, "sig-key")
	assert.True(t, client.VerifyCallback(payload))
}

func TestVerifyCallbackRejectsTampering(t *testing.T) {
	client := NewClient("https://example.com", "k", "c", "sig-key")

	payload := CallbackPayload{
		BillID: "bill_abc",
		Paid:   "true",
		State:  "paid",
		Amount: "15990",
	}
	payload.Signature = signPayload(payload, "sig-key")

	// Flipping any signed field invalidates the signature.
	payload.Amount = "1"
	assert.False(t, client.VerifyCallback(payload))

	payload.Amount = "15990"
	payload.Signature = signPayload(payload, "wrong-key")
	assert.False(t, client.VerifyCallback(payload))

	payload.Signature = ""
	assert.False(t, client.VerifyCallback(payload))
}
