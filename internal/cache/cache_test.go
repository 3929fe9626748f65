package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/epquotient/epq/pkg/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	cache, err := NewCache(mr.Host(), mr.Server().Addr().Port, "", 0)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create cache: %v", err)
	}

	return cache, mr
}

func TestNewCache(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestCache_JobOperations(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	job := &models.Job{
		ID:          "job-1",
		UserID:      "user-1",
		VideoID:     "video-1",
		Status:      models.JobStatusTranscribing,
		Progress:    25,
		CurrentStep: "Transcribing speech",
	}

	if err := cache.SetJob(ctx, job, 5*time.Minute); err != nil {
		t.Fatalf("SetJob failed: %v", err)
	}

	retrieved, err := cache.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Retrieved job should not be nil")
	}
	if retrieved.Status != job.Status {
		t.Errorf("Expected status %s, got %s", job.Status, retrieved.Status)
	}
	if retrieved.Progress != job.Progress {
		t.Errorf("Expected progress %v, got %v", job.Progress, retrieved.Progress)
	}

	if err := cache.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob failed: %v", err)
	}

	retrieved, err = cache.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob after delete failed: %v", err)
	}
	if retrieved != nil {
		t.Error("Job should be gone after delete")
	}
}

func TestCache_JobProgress(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	if err := cache.SetJobProgress(ctx, "job-1", 62.5, time.Minute); err != nil {
		t.Fatalf("SetJobProgress failed: %v", err)
	}

	progress, err := cache.GetJobProgress(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJobProgress failed: %v", err)
	}
	if progress != 62.5 {
		t.Errorf("Expected progress 62.5, got %v", progress)
	}
}

func TestCache_ReportOperations(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	storytelling := 71.0
	report := &models.Report{
		ID:                 "report-1",
		UserID:             "user-1",
		JobID:              "job-1",
		Transcript:         "hello world",
		OverallScore:       74.2,
		GravitasScore:      70,
		CommunicationScore: 80,
		PresenceScore:      75,
		StorytellingScore:  &storytelling,
		CoachingTips:       []string{"Slow down slightly"},
	}

	if err := cache.SetReport(ctx, report, time.Hour); err != nil {
		t.Fatalf("SetReport failed: %v", err)
	}

	retrieved, err := cache.GetReport(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Retrieved report should not be nil")
	}
	if retrieved.OverallScore != report.OverallScore {
		t.Errorf("Expected overall %v, got %v", report.OverallScore, retrieved.OverallScore)
	}
	if retrieved.StorytellingScore == nil || *retrieved.StorytellingScore != storytelling {
		t.Errorf("Storytelling score not preserved: %v", retrieved.StorytellingScore)
	}
}

func TestCache_ShareOperations(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	share := &models.ReportShare{
		ID:          "share-1",
		ReportID:    "report-1",
		OwnerUserID: "user-1",
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
	}

	if err := cache.SetShare(ctx, share, time.Hour); err != nil {
		t.Fatalf("SetShare failed: %v", err)
	}

	retrieved, err := cache.GetShare(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShare failed: %v", err)
	}
	if retrieved == nil || retrieved.ReportID != share.ReportID {
		t.Errorf("Share not preserved: %+v", retrieved)
	}

	if err := cache.DeleteShare(ctx, share.ID); err != nil {
		t.Fatalf("DeleteShare failed: %v", err)
	}

	retrieved, err = cache.GetShare(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShare after delete failed: %v", err)
	}
	if retrieved != nil {
		t.Error("Share should be gone after delete")
	}
}

func TestCache_TrialFlag(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	used, err := cache.TrialUsed(ctx, "fp_abc123")
	if err != nil {
		t.Fatalf("TrialUsed failed: %v", err)
	}
	if used {
		t.Error("Unknown fingerprint should not be marked used")
	}

	if err := cache.MarkTrialUsed(ctx, "fp_abc123"); err != nil {
		t.Fatalf("MarkTrialUsed failed: %v", err)
	}

	used, err = cache.TrialUsed(ctx, "fp_abc123")
	if err != nil {
		t.Fatalf("TrialUsed failed: %v", err)
	}
	if !used {
		t.Error("Fingerprint should be marked used")
	}
}

func TestCache_Stats(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cache.IncrementStat(ctx, "uploads"); err != nil {
			t.Fatalf("IncrementStat failed: %v", err)
		}
	}

	val, err := cache.GetStat(ctx, "uploads")
	if err != nil {
		t.Fatalf("GetStat failed: %v", err)
	}
	if val != 3 {
		t.Errorf("Expected 3, got %d", val)
	}
}
