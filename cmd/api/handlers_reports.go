package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epquotient/epq/internal/analytics"
	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/metrics"
	"github.com/epquotient/epq/internal/middleware"
	"github.com/epquotient/epq/internal/report"
	"github.com/epquotient/epq/pkg/models"
)

const (
	reportListLimit = 50
	shareTTL        = 7 * 24 * time.Hour
)

func (api *API) listReports(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	reports, err := api.repo.ListReports(c.Request.Context(), userID, reportListLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (api *API) getReport(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reportID := c.Param("id")

	if cached, err := api.cache.GetReport(c.Request.Context(), reportID); err == nil && cached != nil && cached.UserID == userID {
		c.JSON(http.StatusOK, cached)
		return
	}

	rep, err := api.repo.GetReport(c.Request.Context(), reportID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (api *API) downloadReportPDF(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reportID := c.Param("id")

	rep, err := api.repo.GetReport(c.Request.Context(), reportID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	pdf, err := report.Render(rep)
	if err != nil {
		api.log.WithUserID(userID).ErrorWithErr("pdf render failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(rep)+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (api *API) shareReport(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reportID := c.Param("id")

	if _, err := api.repo.GetReport(c.Request.Context(), reportID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	// Reuse a live link instead of minting one per click.
	if existing, err := api.repo.GetActiveShareForReport(c.Request.Context(), reportID, userID); err == nil {
		c.JSON(http.StatusOK, gin.H{"share_id": existing.ID, "expires_at": existing.ExpiresAt})
		return
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}

	share := &models.ReportShare{
		ID:          "share_" + hex.EncodeToString(buf),
		ReportID:    reportID,
		OwnerUserID: userID,
		ExpiresAt:   time.Now().UTC().Add(shareTTL),
	}

	if err := api.repo.CreateShare(c.Request.Context(), share); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}

	if err := api.cache.SetShare(c.Request.Context(), share, shareTTL); err != nil {
		api.log.ErrorWithErr("failed to cache share", err)
	}

	c.JSON(http.StatusOK, gin.H{"share_id": share.ID, "expires_at": share.ExpiresAt})
}

func (api *API) revokeShare(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reportID := c.Param("id")

	share, err := api.repo.GetActiveShareForReport(c.Request.Context(), reportID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active share link"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load share link"})
		return
	}

	if err := api.repo.RevokeShare(c.Request.Context(), share.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke share link"})
		return
	}

	// Drop the cached copy so the link stops resolving immediately.
	if err := api.cache.DeleteShare(c.Request.Context(), share.ID); err != nil {
		api.log.ErrorWithErr("failed to evict revoked share", err)
	}

	c.JSON(http.StatusOK, gin.H{"share_id": share.ID, "revoked": true})
}

func (api *API) deleteReport(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reportID := c.Param("id")

	if err := api.repo.DeleteReport(c.Request.Context(), reportID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}

	if err := api.cache.DeleteReport(c.Request.Context(), reportID); err != nil {
		api.log.ErrorWithErr("failed to evict deleted report", err)
	}

	c.JSON(http.StatusOK, gin.H{"report_id": reportID, "status": "deleted"})
}

func (api *API) getSharedReport(c *gin.Context) {
	shareID := c.Param("id")

	share, err := api.cache.GetShare(c.Request.Context(), shareID)
	if err != nil || share == nil {
		share, err = api.repo.GetShare(c.Request.Context(), shareID)
		if err != nil {
			metrics.ShareResolutionsTotal.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
			return
		}
	}

	if share.Revoked {
		metrics.ShareResolutionsTotal.WithLabelValues("revoked").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}
	if time.Now().After(share.ExpiresAt) {
		metrics.ShareResolutionsTotal.WithLabelValues("expired").Inc()
		c.JSON(http.StatusGone, gin.H{"error": "Share link expired"})
		return
	}

	rep, err := api.repo.GetReportByID(c.Request.Context(), share.ReportID)
	if err != nil {
		metrics.ShareResolutionsTotal.WithLabelValues("not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	// Never leak the owner to anonymous viewers.
	rep.UserID = ""

	metrics.ShareResolutionsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"share": share, "report": rep})
}

func (api *API) analyticsSummary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	window := analytics.ParseWindow(c.DefaultQuery("range", "all"))

	reports, err := api.repo.ListReports(c.Request.Context(), userID, 365)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	summary := analytics.Summarize(reports, window, time.Now().UTC())
	c.JSON(http.StatusOK, summary)
}
