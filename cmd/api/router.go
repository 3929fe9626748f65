package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/epquotient/epq/internal/metrics"
	"github.com/epquotient/epq/internal/middleware"
)

func setupRouter(api *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(api.log))
	router.Use(metricsMiddleware())

	limiter := middleware.NewRateLimiter(api.cfg.Server.RateLimitRPS, api.cfg.Server.RateLimitBurst)
	router.Use(middleware.RateLimit(limiter))

	router.GET("/health", api.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	public.Use(middleware.DeviceFingerprint())
	{
		public.POST("/auth/signup", api.signup)
		public.POST("/auth/login", api.login)
		public.GET("/auth/google-redirect", api.googleRedirect)

		public.GET("/shared/reports/:id", api.getSharedReport)
		public.POST("/payments/webhook", api.paymentWebhook)
	}

	authed := router.Group("/api")
	authed.Use(middleware.DeviceFingerprint())
	authed.Use(middleware.SessionAuth(api.auth))
	{
		authed.GET("/auth/me", api.me)
		authed.POST("/auth/logout", api.logout)

		authed.POST("/videos/upload", api.uploadVideo)
		authed.GET("/videos/:id/download", api.downloadVideo)
		authed.POST("/videos/:id/process", api.processVideo)
		authed.GET("/jobs", api.listJobs)
		authed.GET("/jobs/:id/status", api.getJobStatus)

		authed.GET("/reports", api.listReports)
		authed.GET("/reports/:id", api.getReport)
		authed.DELETE("/reports/:id", api.deleteReport)
		authed.GET("/reports/:id/pdf", api.downloadReportPDF)
		authed.POST("/reports/:id/share", api.shareReport)
		authed.DELETE("/reports/:id/share", api.revokeShare)

		authed.GET("/analytics/summary", api.analyticsSummary)

		authed.GET("/subscription/status", api.subscriptionStatus)
		authed.POST("/subscription/upgrade", api.upgradeSubscription)
		authed.POST("/subscription/check-video-limit", api.checkVideoLimit)
		authed.POST("/subscription/increment-usage", api.incrementUsage)

		authed.GET("/retention/settings", api.getRetentionSettings)
		authed.PUT("/retention/settings/default", api.setDefaultRetention)
		authed.PUT("/retention/videos/:id", api.setVideoRetention)
		authed.DELETE("/retention/videos/:id", api.deleteVideoNow)

		authed.POST("/profile/", api.createProfile)
		authed.GET("/profile/", api.getProfile)

		authed.POST("/coaching/requests", api.createCoachingRequest)

		authed.GET("/simulator/scenarios", api.simulatorScenarios)
		authed.GET("/training/modules", api.trainingModules)
		authed.GET("/training/modules/:id", api.trainingModuleContent)
		authed.GET("/learning/daily-tip", api.dailyTip)
		authed.GET("/learning/ted-talks", api.tedTalks)
	}

	return router
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.repo.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
