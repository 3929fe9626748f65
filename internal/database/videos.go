package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// CreateVideo creates a new video record
func (r *Repository) CreateVideo(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (video_id, user_id, filename, storage_key, file_size,
			content_type, duration, retention_policy, scheduled_deletion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING uploaded_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		video.ID, video.UserID, video.Filename, video.StorageKey, video.Size,
		video.ContentType, video.Duration, video.RetentionPolicy, video.ScheduledDeletion,
	).Scan(&video.UploadedAt)

	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetVideo retrieves a video by ID scoped to its owner
func (r *Repository) GetVideo(ctx context.Context, id, userID string) (*models.Video, error) {
	var video models.Video

	query := `
		SELECT video_id, user_id, filename, storage_key, file_size, content_type,
			duration, retention_policy, scheduled_deletion, uploaded_at
		FROM videos
		WHERE video_id = $1 AND user_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, id, userID).Scan(
		&video.ID, &video.UserID, &video.Filename, &video.StorageKey, &video.Size,
		&video.ContentType, &video.Duration, &video.RetentionPolicy,
		&video.ScheduledDeletion, &video.UploadedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return &video, nil
}

// ListVideos returns a user's videos, newest first
func (r *Repository) ListVideos(ctx context.Context, userID string) ([]*models.Video, error) {
	query := `
		SELECT video_id, user_id, filename, storage_key, file_size, content_type,
			duration, retention_policy, scheduled_deletion, uploaded_at
		FROM videos
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		var video models.Video
		err := rows.Scan(
			&video.ID, &video.UserID, &video.Filename, &video.StorageKey, &video.Size,
			&video.ContentType, &video.Duration, &video.RetentionPolicy,
			&video.ScheduledDeletion, &video.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, &video)
	}

	return videos, rows.Err()
}

// CountVideosSince counts a user's uploads since the given time
func (r *Repository) CountVideosSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM videos WHERE user_id = $1 AND uploaded_at >= $2`
	if err := r.db.Pool.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

// SetVideoDuration records the probed duration
func (r *Repository) SetVideoDuration(ctx context.Context, id string, duration float64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE videos SET duration = $2 WHERE video_id = $1`, id, duration)
	if err != nil {
		return fmt.Errorf("failed to set video duration: %w", err)
	}
	return nil
}

// UpdateVideoRetention changes a video's retention policy and deletion schedule
func (r *Repository) UpdateVideoRetention(ctx context.Context, id, userID, policy string, scheduledDeletion *time.Time) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE videos SET retention_policy = $3, scheduled_deletion = $4
		WHERE video_id = $1 AND user_id = $2
	`, id, userID, policy, scheduledDeletion)
	if err != nil {
		return fmt.Errorf("failed to update video retention: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExpiredVideos returns videos whose scheduled deletion has passed
func (r *Repository) ListExpiredVideos(ctx context.Context, now time.Time) ([]*models.Video, error) {
	query := `
		SELECT video_id, user_id, filename, storage_key, file_size, content_type,
			duration, retention_policy, scheduled_deletion, uploaded_at
		FROM videos
		WHERE scheduled_deletion IS NOT NULL AND scheduled_deletion <= $1
	`

	rows, err := r.db.Pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		var video models.Video
		err := rows.Scan(
			&video.ID, &video.UserID, &video.Filename, &video.StorageKey, &video.Size,
			&video.ContentType, &video.Duration, &video.RetentionPolicy,
			&video.ScheduledDeletion, &video.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, &video)
	}

	return videos, rows.Err()
}

// DeleteVideo removes a video record and its jobs, detaching any reports
// so completed analyses survive the deletion.
func (r *Repository) DeleteVideo(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE reports SET video_id = NULL, video_deleted = TRUE WHERE video_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach reports: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM jobs WHERE video_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete jobs: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM videos WHERE video_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit video deletion: %w", err)
	}
	return nil
}
