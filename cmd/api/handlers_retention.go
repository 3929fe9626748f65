package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/middleware"
)

func (api *API) getRetentionSettings(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	settings, err := api.retention.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load retention settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type retentionDefaultRequest struct {
	RetentionPeriod string `json:"retention_period" binding:"required"`
}

func (api *API) setDefaultRetention(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req retentionDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "retention_period is required"})
		return
	}

	if err := api.retention.SetDefault(c.Request.Context(), userID, req.RetentionPeriod); err != nil {
		if errors.Is(err, database.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid retention period"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update retention settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "default_retention": req.RetentionPeriod})
}

type videoRetentionRequest struct {
	RetentionPolicy string `json:"retention_policy" binding:"required"`
}

func (api *API) setVideoRetention(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	videoID := c.Param("id")

	var req videoRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "retention_policy is required"})
		return
	}

	scheduled, err := api.retention.SetVideoPolicy(c.Request.Context(), videoID, userID, req.RetentionPolicy)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid retention policy"})
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update retention policy"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id":           videoID,
		"retention_policy":   req.RetentionPolicy,
		"scheduled_deletion": scheduled,
		"message":            "Retention policy updated",
	})
}

func (api *API) deleteVideoNow(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	videoID := c.Param("id")

	if err := api.retention.DeleteNow(c.Request.Context(), videoID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id": videoID,
		"status":   "deleted",
		"message":  "Video deleted. Your report is preserved.",
	})
}
