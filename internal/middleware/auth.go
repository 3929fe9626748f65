package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	AuthContextKey        = "user_id"
	FingerprintContextKey = "device_fingerprint"
)

// TokenValidator resolves a bearer token to a user ID.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// SessionAuth middleware validates session tokens
func SessionAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		userID, err := validator.Validate(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(AuthContextKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the user ID from the context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(AuthContextKey)
	if !exists {
		return "", false
	}

	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

// BearerToken extracts the raw bearer token from the request, used by the
// logout handler to revoke the presented token.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// DeviceFingerprint extracts the client fingerprint header so downstream
// handlers can apply trial-abuse checks. The header is optional.
func DeviceFingerprint() gin.HandlerFunc {
	return func(c *gin.Context) {
		if fp := c.GetHeader("X-Device-Fingerprint"); fp != "" {
			c.Set(FingerprintContextKey, fp)
		}
		c.Next()
	}
}

// GetFingerprint retrieves the device fingerprint from the context
func GetFingerprint(c *gin.Context) (string, bool) {
	fp, exists := c.Get(FingerprintContextKey)
	if !exists {
		return "", false
	}

	fpStr, ok := fp.(string)
	return fpStr, ok
}
