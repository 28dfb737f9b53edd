package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a minimal HTTP client for the payment gateway's bill API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	collectionID string
	signatureKey string
	debug        bool
}

// NewClient constructs a gateway client with sane defaults.
func NewClient(baseURL, apiKey, collectionID, signatureKey string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		collectionID: collectionID,
		signatureKey: signatureKey,
		debug:        os.Getenv("ENV") == "development",
	}
}

// CreateBill registers a bill and returns it with the hosted payment URL.
func (c *Client) CreateBill(ctx context.Context, req CreateBillRequest) (*Bill, error) {
	if req.CollectionID == "" {
		req.CollectionID = c.collectionID
	}
	var bill Bill
	if err := c.doRequest(ctx, http.MethodPost, "/v3/bills", req, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBill fetches the current state of a bill.
func (c *Client) GetBill(ctx context.Context, billID string) (*Bill, error) {
	var bill Bill
	if err := c.doRequest(ctx, http.MethodGet, "/v3/bills/"+billID, nil, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// VerifyCallback checks the webhook signature. The gateway signs the
// pipe-joined "key value" pairs in fixed order with HMAC-SHA256.
func (c *Client) VerifyCallback(p CallbackPayload) bool {
	src := strings.Join([]string{
		"amount" + p.Amount,
		"id" + p.BillID,
		"paid_amount" + p.PaidAmount,
		"paid_at" + p.PaidAt,
		"paid" + p.Paid,
		"state" + p.State,
	}, "|")

	mac := hmac.New(sha256.New, []byte(c.signatureKey))
	mac.Write([]byte(src))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(p.Signature))
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[GATEWAY] Incoming response")
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
