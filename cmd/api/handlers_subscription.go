package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epquotient/epq/internal/middleware"
	"github.com/epquotient/epq/internal/payment"
	"github.com/epquotient/epq/internal/subscription"
)

func (api *API) subscriptionStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := api.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	fingerprint, _ := middleware.GetFingerprint(c)

	status, err := api.subs.CheckStatus(c.Request.Context(), userID, user.Email, fingerprint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	c.JSON(http.StatusOK, status)
}

type upgradeRequest struct {
	Tier         string `json:"tier" binding:"required"`
	BillingCycle string `json:"billing_cycle"`
}

func (api *API) upgradeSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tier is required"})
		return
	}
	if req.BillingCycle == "" {
		req.BillingCycle = "monthly"
	}

	user, err := api.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	fingerprint, _ := middleware.GetFingerprint(c)

	result, err := api.subs.Upgrade(c.Request.Context(), userID, user.Email, req.Tier, req.BillingCycle, fingerprint)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrTrialAlreadyUsed):
			c.JSON(http.StatusForbidden, gin.H{"error": "Free trial already used on this device or email. Please upgrade to continue."})
		case errors.Is(err, subscription.ErrUnknownTier), errors.Is(err, payment.ErrInvalidPricing):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subscription tier"})
		case errors.Is(err, payment.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not configured"})
		default:
			api.log.WithUserID(userID).ErrorWithErr("upgrade failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upgrade failed"})
		}
		return
	}

	if result.Activated {
		c.JSON(http.StatusOK, gin.H{"success": true, "tier": result.Tier, "message": "Free trial activated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "checkout_url": result.CheckoutURL, "message": "Redirecting to payment..."})
}

func (api *API) checkVideoLimit(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := api.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	remaining, err := api.subs.CheckVideoLimit(c.Request.Context(), userID, user.Email)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrExpired):
			c.JSON(http.StatusForbidden, gin.H{"allowed": false, "error": "Subscription expired. Please upgrade to continue."})
		case errors.Is(err, subscription.ErrVideoLimitReached):
			c.JSON(http.StatusForbidden, gin.H{"allowed": false, "error": "Video limit reached for your plan. Please upgrade to continue."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check video limit"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": true, "remaining": remaining})
}

func (api *API) incrementUsage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := api.subs.IncrementUsage(c.Request.Context(), userID); err != nil {
		api.log.WithUserID(userID).ErrorWithErr("failed to increment usage", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (api *API) paymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	if !api.payments.VerifySignature(body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event payment.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if event.Event != "payment.succeeded" || event.SessionID == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := api.subs.ConfirmUpgrade(c.Request.Context(), event.SessionID); err != nil {
		api.log.WithField("session_id", event.SessionID).ErrorWithErr("upgrade confirmation failed", err)
		c.JSON(http.StatusOK, gin.H{"received": true, "confirmed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "confirmed": true})
}
