package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epquotient/epq/internal/config"
	"github.com/epquotient/epq/internal/content"
	"github.com/epquotient/epq/internal/payment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAPI() *API {
	return &API{
		cfg: &config.Config{
			Server: config.ServerConfig{
				FrontendURL:    "https://app.example.com",
				RateLimitRPS:   100,
				RateLimitBurst: 200,
			},
			Analysis: config.AnalysisConfig{
				MaxUploadSize: 200 * 1024 * 1024,
			},
		},
		generator: &content.StaticGenerator{},
	}
}

func performRequest(handler gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler(c)
	return w
}

func TestUploadVideoRejectsOversizedBody(t *testing.T) {
	api := testAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/videos/upload", strings.NewReader("x"))
	req.ContentLength = 201 * 1024 * 1024

	w := performRequest(api.uploadVideo, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "200MB")
}

func TestUploadVideoRequiresFile(t *testing.T) {
	api := testAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/videos/upload", bytes.NewReader(nil))

	w := performRequest(api.uploadVideo, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No video file provided")
}

func TestGoogleRedirectPointsAtDashboard(t *testing.T) {
	api := testAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google-redirect", nil)
	w := performRequest(api.googleRedirect, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://auth.emergentagent.com/?redirect=https://app.example.com/dashboard", resp["auth_url"])
}

func TestPaymentWebhookRejectsBadSignature(t *testing.T) {
	api := testAPI()
	api.payments = payment.NewClient(config.PaymentConfig{
		APIKey:        "key",
		Endpoint:      "https://pay.example.com",
		WebhookSecret: "whsec",
	}, api.cfg.Server.FrontendURL)

	body := []byte(`{"event":"payment.succeeded","session_id":"sess_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", "sha256=deadbeef")

	w := performRequest(api.paymentWebhook, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentWebhookAcceptsSignedIgnoredEvent(t *testing.T) {
	api := testAPI()
	api.payments = payment.NewClient(config.PaymentConfig{
		APIKey:        "key",
		Endpoint:      "https://pay.example.com",
		WebhookSecret: "whsec",
	}, api.cfg.Server.FrontendURL)

	body := []byte(`{"event":"payment.failed","session_id":"sess_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", payment.Sign(body, "whsec"))

	w := performRequest(api.paymentWebhook, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	router := setupRouter(testAPI())

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /metrics",
		"POST /api/auth/signup",
		"POST /api/videos/upload",
		"GET /api/videos/:id/download",
		"GET /api/jobs",
		"GET /api/jobs/:id/status",
		"DELETE /api/reports/:id",
		"POST /api/reports/:id/share",
		"DELETE /api/reports/:id/share",
		"DELETE /api/retention/videos/:id",
		"GET /api/shared/reports/:id",
		"POST /api/payments/webhook",
	}
	for _, r := range want {
		assert.True(t, registered[r], "route not registered: %s", r)
	}
}

func TestSimulatorScenariosHandler(t *testing.T) {
	api := testAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/simulator/scenarios", nil)
	w := performRequest(api.simulatorScenarios, req)

	require.Equal(t, http.StatusOK, w.Code)

	var set content.ScenarioSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.Len(t, set.Scenarios, 5)
	assert.NotEmpty(t, set.RotationInfo.RemainingFormatted)
}

func TestDailyTipHandler(t *testing.T) {
	api := testAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/learning/daily-tip", nil)
	w := performRequest(api.dailyTip, req)

	require.Equal(t, http.StatusOK, w.Code)

	var tip content.DailyTip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tip))
	assert.NotEmpty(t, tip.Tip)
	assert.Equal(t, 14, tip.TotalTips)
}

func TestTEDTalksHandler(t *testing.T) {
	api := testAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/learning/ted-talks", nil)
	w := performRequest(api.tedTalks, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ted.com")
}
