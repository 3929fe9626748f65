package models

import (
	"time"
)

// Job represents an analysis job converting an uploaded video into a Report
type Job struct {
	ID          string     `json:"job_id" db:"job_id"`
	UserID      string     `json:"user_id" db:"user_id"`
	VideoID     string     `json:"video_id" db:"video_id"`
	Status      string     `json:"status" db:"status"`
	Progress    float64    `json:"progress" db:"progress"`
	CurrentStep string     `json:"current_step" db:"current_step"`
	ReportID    *string    `json:"report_id,omitempty" db:"report_id"`
	ErrorMsg    string     `json:"error,omitempty" db:"error_msg"`
	RetryCount  int        `json:"retry_count" db:"retry_count"`
	WorkerID    string     `json:"worker_id,omitempty" db:"worker_id"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// JobStatus constants mirror the pipeline stages so clients can show a
// meaningful step label while polling.
const (
	JobStatusPending       = "pending"
	JobStatusTranscribing  = "transcribing"
	JobStatusAudioAnalysis = "audio_analysis"
	JobStatusVideoAnalysis = "video_analysis"
	JobStatusNLPAnalysis   = "nlp_analysis"
	JobStatusScoring       = "scoring"
	JobStatusCompleted     = "completed"
	JobStatusFailed        = "failed"
)

// TerminalStatus reports whether a job status will never change again.
func TerminalStatus(status string) bool {
	return status == JobStatusCompleted || status == JobStatusFailed
}
