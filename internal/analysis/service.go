package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/epquotient/epq/internal/cache"
	"github.com/epquotient/epq/internal/config"
	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/logging"
	"github.com/epquotient/epq/internal/metrics"
	"github.com/epquotient/epq/internal/storage"
	"github.com/epquotient/epq/pkg/models"
)

// Service runs the full analysis pipeline for one job: audio extraction,
// transcription, audio/vision/NLP analysis, scoring and report
// persistence, with progress written to Postgres and Redis as it goes.
type Service struct {
	repo    *database.Repository
	storage *storage.Storage
	cache   *cache.Cache
	ai      AIClient
	ffmpeg  *FFmpeg
	cfg     config.AnalysisConfig
	log     *logging.Logger
}

// NewService creates the pipeline service
func NewService(repo *database.Repository, store *storage.Storage, c *cache.Cache, ai AIClient, cfg config.AnalysisConfig, log *logging.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: store,
		cache:   c,
		ai:      ai,
		ffmpeg:  NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath),
		cfg:     cfg,
		log:     log,
	}
}

const progressTTL = 10 * time.Minute

func (s *Service) updateProgress(ctx context.Context, jobID, status string, progress float64, step string) {
	if err := s.repo.UpdateJobProgress(ctx, jobID, status, progress, step); err != nil {
		s.log.WithError(err).WithJobID(jobID).Error("failed to persist job progress")
	}
	if err := s.cache.SetJobProgress(ctx, jobID, progress, progressTTL); err != nil {
		s.log.WithError(err).WithJobID(jobID).Warn("failed to cache job progress")
	}
}

// ProcessJob runs the pipeline end to end. On failure the job row is
// marked failed with the error message; the returned error drives the
// queue retry path.
func (s *Service) ProcessJob(ctx context.Context, job *models.Job) error {
	start := time.Now()
	metrics.JobsInProgress.Inc()
	defer metrics.JobsInProgress.Dec()

	err := s.runPipeline(ctx, job)
	if err != nil {
		s.log.WithError(err).WithJobID(job.ID).Error("analysis failed")
		if failErr := s.repo.FailJob(ctx, job.ID, err.Error()); failErr != nil {
			s.log.WithError(failErr).WithJobID(job.ID).Error("failed to mark job failed")
		}
		metrics.JobsCompletedTotal.WithLabelValues(models.JobStatusFailed).Inc()
		return err
	}

	metrics.JobsCompletedTotal.WithLabelValues(models.JobStatusCompleted).Inc()
	metrics.JobDuration.Observe(time.Since(start).Seconds())
	s.log.LogJobEvent(job.ID, "analysis completed", models.JobStatusCompleted)
	return nil
}

func (s *Service) runPipeline(ctx context.Context, job *models.Job) error {
	video, err := s.repo.GetVideo(ctx, job.VideoID, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to load video: %w", err)
	}

	s.updateProgress(ctx, job.ID, models.JobStatusTranscribing, 10, "Extracting audio...")

	videoPath, err := s.fetchVideo(ctx, video)
	if err != nil {
		return err
	}
	defer os.Remove(videoPath)

	stageStart := time.Now()
	audioPath, err := s.ffmpeg.ExtractAudio(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("audio extraction: %w", err)
	}
	defer os.Remove(audioPath)
	metrics.AnalysisStageDuration.WithLabelValues("audio_extraction").Observe(time.Since(stageStart).Seconds())
	s.log.LogAnalysisStage(job.ID, "audio_extraction", 10, time.Since(stageStart))

	if video.Duration == nil {
		if duration, err := s.ffmpeg.ProbeDuration(ctx, videoPath); err == nil {
			if err := s.repo.SetVideoDuration(ctx, video.ID, duration); err != nil {
				s.log.WithError(err).WithVideoID(video.ID).Warn("failed to persist duration")
			}
		}
	}

	s.updateProgress(ctx, job.ID, models.JobStatusTranscribing, 20, "Transcribing speech...")

	stageStart = time.Now()
	transcription, err := s.ai.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	metrics.AnalysisStageDuration.WithLabelValues("transcription").Observe(time.Since(stageStart).Seconds())
	s.log.LogAnalysisStage(job.ID, "transcription", 20, time.Since(stageStart))

	s.updateProgress(ctx, job.ID, models.JobStatusAudioAnalysis, 35, "Analyzing speech patterns...")

	stageStart = time.Now()
	communication := models.CommunicationMetrics{
		SpeakingRate:    AnalyzeSpeakingRate(transcription.Text, transcription.Duration),
		Pauses:          DetectPauses(transcription.Words),
		FillerWords:     DetectFillerWords(transcription.Words),
		VocalMetrics:    AnalyzeVocalMetrics(audioPath),
		SentenceClarity: AnalyzeSentenceClarity(transcription.Text),
	}
	metrics.AnalysisStageDuration.WithLabelValues("audio_analysis").Observe(time.Since(stageStart).Seconds())
	s.log.LogAnalysisStage(job.ID, "audio_analysis", 35, time.Since(stageStart))

	s.updateProgress(ctx, job.ID, models.JobStatusVideoAnalysis, 50, "Analyzing visual presence...")

	stageStart = time.Now()
	frames, err := s.ffmpeg.ExtractFrames(ctx, videoPath, s.cfg.FrameFPS, s.cfg.MaxFrames)
	if err != nil {
		s.log.WithError(err).WithJobID(job.ID).Warn("frame extraction failed, using empty frame set")
		frames = nil
	}
	presence, err := s.ai.AnalyzeFrames(ctx, frames)
	if err != nil {
		return fmt.Errorf("vision analysis: %w", err)
	}
	metrics.AnalysisStageDuration.WithLabelValues("video_analysis").Observe(time.Since(stageStart).Seconds())
	s.log.LogAnalysisStage(job.ID, "video_analysis", 50, time.Since(stageStart))

	s.updateProgress(ctx, job.ID, models.JobStatusNLPAnalysis, 70, "Analyzing leadership signals...")

	var profile *models.Profile
	if p, err := s.repo.GetProfile(ctx, job.UserID); err == nil {
		profile = p
	} else if !errors.Is(err, database.ErrNotFound) {
		s.log.WithError(err).WithUserID(job.UserID).Warn("failed to load profile")
	}

	stageStart = time.Now()
	gravitas, err := s.ai.AnalyzeGravitas(ctx, transcription.Text, profile)
	if err != nil {
		return fmt.Errorf("gravitas analysis: %w", err)
	}
	storytelling, err := s.ai.AnalyzeStorytelling(ctx, transcription.Text, profile)
	if err != nil {
		return fmt.Errorf("storytelling analysis: %w", err)
	}
	metrics.AnalysisStageDuration.WithLabelValues("nlp_analysis").Observe(time.Since(stageStart).Seconds())
	s.log.LogAnalysisStage(job.ID, "nlp_analysis", 70, time.Since(stageStart))

	s.updateProgress(ctx, job.ID, models.JobStatusScoring, 85, "Calculating scores...")

	detailed := models.DetailedMetrics{
		Communication: communication,
		Presence:      presence,
		Gravitas:      gravitas,
		Storytelling:  storytelling,
	}
	scores := CalculateScores(detailed)

	tips, err := s.ai.CoachingTips(ctx, detailed, scores)
	if err != nil {
		return fmt.Errorf("coaching tips: %w", err)
	}

	report := &models.Report{
		ID:                 fmt.Sprintf("report_%s", strings.ReplaceAll(uuid.New().String(), "-", "")),
		UserID:             job.UserID,
		VideoID:            &video.ID,
		JobID:              job.ID,
		Transcript:         transcription.Text,
		OverallScore:       scores.Overall,
		GravitasScore:      scores.Gravitas,
		CommunicationScore: scores.Communication,
		PresenceScore:      scores.Presence,
		StorytellingScore:  scores.Storytelling,
		DetailedMetrics:    detailed,
		CoachingTips:       tips,
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}
	if err := s.repo.CompleteJob(ctx, job.ID, report.ID); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	if err := s.cache.SetReport(ctx, report, time.Hour); err != nil {
		s.log.WithError(err).WithJobID(job.ID).Warn("failed to cache report")
	}
	if err := s.cache.SetJobProgress(ctx, job.ID, 100, progressTTL); err != nil {
		s.log.WithError(err).WithJobID(job.ID).Warn("failed to cache job progress")
	}
	metrics.OverallScores.Observe(scores.Overall)

	return nil
}

// fetchVideo downloads the stored object to a temp file whose extension
// matches the recorded content type, since ffmpeg relies on it.
func (s *Service) fetchVideo(ctx context.Context, video *models.Video) (string, error) {
	suffix := ".mp4"
	ct := strings.ToLower(video.ContentType)
	name := strings.ToLower(video.Filename)
	switch {
	case strings.Contains(ct, "webm") || strings.HasSuffix(name, ".webm"):
		suffix = ".webm"
	case strings.Contains(ct, "quicktime") || strings.HasSuffix(name, ".mov"):
		suffix = ".mov"
	case strings.Contains(ct, "avi") || strings.HasSuffix(name, ".avi"):
		suffix = ".avi"
	}

	tempDir := s.cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	videoPath := filepath.Join(tempDir, fmt.Sprintf("video-%s%s", video.ID, suffix))

	if err := s.storage.DownloadFile(ctx, video.StorageKey, videoPath); err != nil {
		return "", fmt.Errorf("failed to fetch video: %w", err)
	}

	return videoPath, nil
}
