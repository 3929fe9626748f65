// Package payment integrates Dodo Payments checkout sessions and the
// signed webhook that confirms them.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/epquotient/epq/internal/config"
)

var (
	ErrNotConfigured  = errors.New("payment system not configured")
	ErrInvalidPricing = errors.New("invalid pricing tier")
)

// Price is one checkout price point in cents.
type Price struct {
	Amount   int
	Currency string
	Interval string
}

// Pricing maps "{tier}_{billing_cycle}" to its price.
var Pricing = map[string]Price{
	"basic_monthly": {Amount: 2500, Currency: "USD", Interval: "monthly"},
	"basic_yearly":  {Amount: 27500, Currency: "USD", Interval: "yearly"},
	"pro_monthly":   {Amount: 8000, Currency: "USD", Interval: "monthly"},
	"pro_yearly":    {Amount: 85000, Currency: "USD", Interval: "yearly"},
}

// Session is a created checkout the user is redirected to.
type Session struct {
	ID          string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// Verification is the result of checking a checkout session's state.
type Verification struct {
	Verified bool              `json:"verified"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Client talks to the Dodo Payments HTTP API.
type Client struct {
	httpClient    *http.Client
	endpoint      string
	apiKey        string
	webhookSecret string
	frontendURL   string
}

func NewClient(cfg config.PaymentConfig, frontendURL string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		endpoint:      cfg.Endpoint,
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
		frontendURL:   frontendURL,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type createSessionRequest struct {
	Amount        int               `json:"amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
}

type sessionResponse struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	CheckoutURL string            `json:"checkout_url"`
	Metadata    map[string]string `json:"metadata"`
}

// CreateSession starts a checkout for the given tier and billing cycle.
func (c *Client) CreateSession(ctx context.Context, tier, billingCycle, userEmail, userID string) (*Session, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	price, ok := Pricing[tier+"_"+billingCycle]
	if !ok {
		return nil, ErrInvalidPricing
	}

	reqBody := createSessionRequest{
		Amount:        price.Amount,
		Currency:      price.Currency,
		CustomerEmail: userEmail,
		Metadata: map[string]string{
			"user_id":       userID,
			"tier":          tier,
			"billing_cycle": billingCycle,
		},
		SuccessURL: c.frontendURL + "/dashboard?payment=success",
		CancelURL:  c.frontendURL + "/pricing?payment=cancelled",
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/payments", reqBody, &resp); err != nil {
		return nil, err
	}

	return &Session{ID: resp.ID, CheckoutURL: resp.CheckoutURL}, nil
}

// Verify checks whether a checkout session has been paid.
func (c *Client) Verify(ctx context.Context, sessionID string) (*Verification, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/payments/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}

	return &Verification{
		Verified: resp.Status == "paid",
		Metadata: resp.Metadata,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read payment response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("payment API returned status %d: %s", resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode payment response: %w", err)
	}
	return nil
}

// WebhookEvent is the payload Dodo posts when a payment settles.
type WebhookEvent struct {
	Event     string `json:"event"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// VerifySignature checks the X-Webhook-Signature header against the shared
// secret. Signatures are "sha256=" followed by the hex HMAC of the body.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	if c.webhookSecret == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(payload, c.webhookSecret)), []byte(signature))
}

// Sign computes the webhook signature for a payload.
func Sign(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
