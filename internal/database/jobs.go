package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// CreateJob creates a new analysis job record
func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (job_id, user_id, video_id, status, progress, current_step)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		job.ID, job.UserID, job.VideoID, job.Status, job.Progress, job.CurrentStep,
	).Scan(&job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJob retrieves a job by ID scoped to its owner
func (r *Repository) GetJob(ctx context.Context, id, userID string) (*models.Job, error) {
	var job models.Job

	query := `
		SELECT job_id, user_id, video_id, status, progress, current_step, report_id,
			error_msg, retry_count, worker_id, started_at, completed_at, created_at, updated_at
		FROM jobs
		WHERE job_id = $1 AND user_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, id, userID).Scan(
		&job.ID, &job.UserID, &job.VideoID, &job.Status, &job.Progress, &job.CurrentStep,
		&job.ReportID, &job.ErrorMsg, &job.RetryCount, &job.WorkerID,
		&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// GetJobByID retrieves a job without owner scoping, for worker use
func (r *Repository) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job

	query := `
		SELECT job_id, user_id, video_id, status, progress, current_step, report_id,
			error_msg, retry_count, worker_id, started_at, completed_at, created_at, updated_at
		FROM jobs
		WHERE job_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.UserID, &job.VideoID, &job.Status, &job.Progress, &job.CurrentStep,
		&job.ReportID, &job.ErrorMsg, &job.RetryCount, &job.WorkerID,
		&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// StartJob marks a job as picked up by a worker
func (r *Repository) StartJob(ctx context.Context, id, workerID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE jobs
		SET worker_id = $2, started_at = $3, updated_at = $3
		WHERE job_id = $1
	`, id, workerID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to start job: %w", err)
	}
	return nil
}

// UpdateJobProgress advances a job to the given stage
func (r *Repository) UpdateJobProgress(ctx context.Context, id, status string, progress float64, step string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE jobs
		SET status = $2, progress = $3, current_step = $4, updated_at = $5
		WHERE job_id = $1
	`, id, status, progress, step, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return nil
}

// CompleteJob marks a job completed and links its report
func (r *Repository) CompleteJob(ctx context.Context, id, reportID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE jobs
		SET status = $2, progress = 100, current_step = 'Analysis complete',
			report_id = $3, completed_at = $4, updated_at = $4
		WHERE job_id = $1
	`, id, models.JobStatusCompleted, reportID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	return nil
}

// FailJob marks a job failed with an error message
func (r *Repository) FailJob(ctx context.Context, id, errorMsg string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE jobs
		SET status = $2, error_msg = $3, completed_at = $4, updated_at = $4
		WHERE job_id = $1
	`, id, models.JobStatusFailed, errorMsg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to fail job: %w", err)
	}
	return nil
}

// IncrementJobRetry bumps the retry counter and returns the new count
func (r *Repository) IncrementJobRetry(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE jobs SET retry_count = retry_count + 1, updated_at = $2
		WHERE job_id = $1
		RETURNING retry_count
	`, id, time.Now()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment job retry: %w", err)
	}
	return count, nil
}

// ListJobs returns a user's jobs, newest first
func (r *Repository) ListJobs(ctx context.Context, userID string, limit int) ([]*models.Job, error) {
	query := `
		SELECT job_id, user_id, video_id, status, progress, current_step, report_id,
			error_msg, retry_count, worker_id, started_at, completed_at, created_at, updated_at
		FROM jobs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		var job models.Job
		err := rows.Scan(
			&job.ID, &job.UserID, &job.VideoID, &job.Status, &job.Progress, &job.CurrentStep,
			&job.ReportID, &job.ErrorMsg, &job.RetryCount, &job.WorkerID,
			&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}
