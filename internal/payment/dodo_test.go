package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epquotient/epq/internal/config"
)

func testClient(endpoint string) *Client {
	return NewClient(config.PaymentConfig{
		APIKey:        "test-key",
		Endpoint:      endpoint,
		WebhookSecret: "whsec",
	}, "http://localhost:3000")
}

func TestCreateSession(t *testing.T) {
	var captured createSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(sessionResponse{
			ID:          "sess_123",
			CheckoutURL: "https://checkout.dodopayments.com/sess_123",
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	session, err := client.CreateSession(context.Background(), "pro", "monthly", "a@b.com", "user_1")
	require.NoError(t, err)

	assert.Equal(t, "sess_123", session.ID)
	assert.Equal(t, "https://checkout.dodopayments.com/sess_123", session.CheckoutURL)
	assert.Equal(t, 8000, captured.Amount)
	assert.Equal(t, "USD", captured.Currency)
	assert.Equal(t, "pro", captured.Metadata["tier"])
	assert.Equal(t, "monthly", captured.Metadata["billing_cycle"])
	assert.Contains(t, captured.SuccessURL, "payment=success")
}

func TestCreateSession_InvalidPricing(t *testing.T) {
	client := testClient("http://unused")
	_, err := client.CreateSession(context.Background(), "enterprise", "monthly", "a@b.com", "user_1")
	assert.ErrorIs(t, err, ErrInvalidPricing)
}

func TestCreateSession_NotConfigured(t *testing.T) {
	client := NewClient(config.PaymentConfig{}, "http://localhost:3000")
	_, err := client.CreateSession(context.Background(), "pro", "monthly", "a@b.com", "user_1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/sess_123", r.URL.Path)
		json.NewEncoder(w).Encode(sessionResponse{
			ID:       "sess_123",
			Status:   "paid",
			Metadata: map[string]string{"user_id": "user_1", "tier": "pro"},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	verification, err := client.Verify(context.Background(), "sess_123")
	require.NoError(t, err)

	assert.True(t, verification.Verified)
	assert.Equal(t, "user_1", verification.Metadata["user_id"])
}

func TestVerify_Unpaid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sessionResponse{ID: "sess_123", Status: "pending"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	verification, err := client.Verify(context.Background(), "sess_123")
	require.NoError(t, err)
	assert.False(t, verification.Verified)
}

func TestVerifySignature(t *testing.T) {
	client := testClient("http://unused")
	payload := []byte(`{"event":"payment.succeeded","session_id":"sess_123","status":"paid"}`)

	assert.True(t, client.VerifySignature(payload, Sign(payload, "whsec")))
	assert.False(t, client.VerifySignature(payload, Sign(payload, "wrong")))
	assert.False(t, client.VerifySignature(payload, "sha256=deadbeef"))
}

func TestVerifySignature_NoSecret(t *testing.T) {
	client := NewClient(config.PaymentConfig{APIKey: "k"}, "")
	payload := []byte("{}")
	assert.False(t, client.VerifySignature(payload, Sign(payload, "")))
}
