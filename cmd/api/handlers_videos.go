package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/metrics"
	"github.com/epquotient/epq/internal/middleware"
	"github.com/epquotient/epq/internal/retention"
	"github.com/epquotient/epq/internal/storage"
	"github.com/epquotient/epq/internal/subscription"
	"github.com/epquotient/epq/pkg/models"
)

func (api *API) uploadVideo(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	maxSize := api.cfg.Analysis.MaxUploadSize

	// Reject oversized requests before reading or storing anything.
	if c.Request.ContentLength > maxSize {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video size exceeds 200MB limit"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video file provided"})
		return
	}
	if file.Size > maxSize {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video size exceeds 200MB limit"})
		return
	}

	videoID := fmt.Sprintf("video_%s", uuid.New().String()[:12])
	storageKey := storage.VideoKey(videoID, file.Filename)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/webm"
	}

	// Stream straight into object storage, no temp file.
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	err = api.storage.Upload(c.Request.Context(), storageKey, src, file.Size, contentType)
	api.log.LogStorageOperation("upload", storageKey, file.Size, err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store video"})
		return
	}

	// Retention defaults come from the user's settings.
	settings, err := api.repo.GetUserSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	video := &models.Video{
		ID:              videoID,
		UserID:          userID,
		Filename:        file.Filename,
		StorageKey:      storageKey,
		Size:            file.Size,
		ContentType:     contentType,
		RetentionPolicy: settings.DefaultRetention,
	}
	video.ScheduledDeletion = retention.ScheduledDeletion(settings.DefaultRetention, time.Now().UTC())

	if err := api.repo.CreateVideo(c.Request.Context(), video); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record video"})
		return
	}

	metrics.VideoUploadsTotal.Inc()
	metrics.VideoUploadSizeBytes.Observe(float64(file.Size))
	api.log.WithUserID(userID).WithVideoID(videoID).Info("video uploaded")

	c.JSON(http.StatusOK, gin.H{"video_id": videoID, "message": "Video uploaded successfully"})
}

func (api *API) processVideo(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	videoID := c.Param("id")

	video, err := api.repo.GetVideo(c.Request.Context(), videoID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load video"})
		return
	}

	user, err := api.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	if _, err := api.subs.CheckVideoLimit(c.Request.Context(), userID, user.Email); err != nil {
		switch {
		case errors.Is(err, subscription.ErrExpired):
			c.JSON(http.StatusForbidden, gin.H{"error": "Your subscription has expired. Please upgrade to continue."})
		case errors.Is(err, subscription.ErrVideoLimitReached):
			c.JSON(http.StatusForbidden, gin.H{"error": "You've reached your monthly video limit. Upgrade to continue."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
		}
		return
	}

	job := &models.Job{
		ID:          fmt.Sprintf("job_%s", strings.ReplaceAll(uuid.New().String(), "-", "")),
		UserID:      userID,
		VideoID:     video.ID,
		Status:      models.JobStatusPending,
		Progress:    0,
		CurrentStep: "Initializing...",
	}

	if err := api.repo.CreateJob(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	if err := api.queue.PublishJob(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue job"})
		return
	}

	metrics.JobsCreatedTotal.Inc()
	api.log.WithJobID(job.ID).WithVideoID(video.ID).Info("analysis job queued")

	c.JSON(http.StatusOK, gin.H{"job_id": job.ID, "message": "Processing started"})
}

func (api *API) getJobStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	jobID := c.Param("id")

	job, err := api.repo.GetJob(c.Request.Context(), jobID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		return
	}

	// The worker pushes progress to redis between row updates; prefer the
	// fresher value while the job is live.
	if !models.TerminalStatus(job.Status) {
		if progress, err := api.cache.GetJobProgress(c.Request.Context(), job.ID); err == nil && progress > job.Progress {
			job.Progress = progress
		}
	}

	c.JSON(http.StatusOK, job)
}

// downloadVideo streams the stored recording back to its owner. Gated on
// the tier's download feature.
func (api *API) downloadVideo(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	videoID := c.Param("id")

	video, err := api.repo.GetVideo(c.Request.Context(), videoID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load video"})
		return
	}

	user, err := api.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	fingerprint, _ := middleware.GetFingerprint(c)
	status, err := api.subs.CheckStatus(c.Request.Context(), userID, user.Email, fingerprint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	if !status.CanDownload {
		c.JSON(http.StatusForbidden, gin.H{"error": "Video downloads require a paid plan"})
		return
	}

	reader, err := api.storage.Download(c.Request.Context(), video.StorageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch video"})
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, video.Size, video.ContentType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, video.Filename),
	})
}

func (api *API) listJobs(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	jobs, err := api.repo.ListJobs(c.Request.Context(), userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
