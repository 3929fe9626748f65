package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// CreateReport persists a completed analysis report
func (r *Repository) CreateReport(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (report_id, user_id, video_id, job_id, transcript,
			overall_score, gravitas_score, communication_score, presence_score,
			storytelling_score, detailed_metrics, coaching_tips, video_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		report.ID, report.UserID, report.VideoID, report.JobID, report.Transcript,
		report.OverallScore, report.GravitasScore, report.CommunicationScore,
		report.PresenceScore, report.StorytellingScore, report.DetailedMetrics,
		report.CoachingTips, report.VideoDeleted,
	).Scan(&report.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

const reportColumns = `report_id, user_id, video_id, job_id, transcript,
	overall_score, gravitas_score, communication_score, presence_score,
	storytelling_score, detailed_metrics, coaching_tips, video_deleted, created_at`

func scanReport(row pgx.Row) (*models.Report, error) {
	var report models.Report
	err := row.Scan(
		&report.ID, &report.UserID, &report.VideoID, &report.JobID, &report.Transcript,
		&report.OverallScore, &report.GravitasScore, &report.CommunicationScore,
		&report.PresenceScore, &report.StorytellingScore, &report.DetailedMetrics,
		&report.CoachingTips, &report.VideoDeleted, &report.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	return &report, nil
}

// GetReport retrieves a report by ID scoped to its owner
func (r *Repository) GetReport(ctx context.Context, id, userID string) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE report_id = $1 AND user_id = $2`, reportColumns)
	return scanReport(r.db.Pool.QueryRow(ctx, query, id, userID))
}

// GetReportByID retrieves a report without owner scoping. Share link
// resolution uses this; callers must enforce access themselves.
func (r *Repository) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE report_id = $1`, reportColumns)
	return scanReport(r.db.Pool.QueryRow(ctx, query, id))
}

// ListReports returns a user's reports, newest first, capped at limit
func (r *Repository) ListReports(ctx context.Context, userID string, limit int) ([]*models.Report, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, reportColumns)

	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// DeleteReport removes a report owned by the user
func (r *Repository) DeleteReport(ctx context.Context, id, userID string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reports WHERE report_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
