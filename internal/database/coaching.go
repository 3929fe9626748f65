package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// CreateCoachingRequest records a human-coaching inquiry
func (r *Repository) CreateCoachingRequest(ctx context.Context, req *models.CoachingRequest) error {
	if req.ID == "" {
		req.ID = fmt.Sprintf("coach_%s", uuid.New().String()[:12])
	}
	if req.Status == "" {
		req.Status = "new"
	}

	query := `
		INSERT INTO coaching_requests (request_id, user_id, name, email, goal,
			preferred_times, notes, report_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		req.ID, req.UserID, req.Name, req.Email, req.Goal,
		req.PreferredTimes, req.Notes, req.ReportID, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create coaching request: %w", err)
	}

	return nil
}

// ListCoachingRequests returns a user's coaching requests, newest first
func (r *Repository) ListCoachingRequests(ctx context.Context, userID string) ([]*models.CoachingRequest, error) {
	query := `
		SELECT request_id, user_id, name, email, goal, preferred_times, notes,
			report_id, status, created_at, updated_at
		FROM coaching_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaching requests: %w", err)
	}
	defer rows.Close()

	var reqs []*models.CoachingRequest
	for rows.Next() {
		var req models.CoachingRequest
		err := rows.Scan(
			&req.ID, &req.UserID, &req.Name, &req.Email, &req.Goal,
			&req.PreferredTimes, &req.Notes, &req.ReportID, &req.Status,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coaching request: %w", err)
		}
		reqs = append(reqs, &req)
	}

	return reqs, rows.Err()
}

// GetCoachingRequest retrieves one coaching request scoped to its owner
func (r *Repository) GetCoachingRequest(ctx context.Context, id, userID string) (*models.CoachingRequest, error) {
	var req models.CoachingRequest

	query := `
		SELECT request_id, user_id, name, email, goal, preferred_times, notes,
			report_id, status, created_at, updated_at
		FROM coaching_requests
		WHERE request_id = $1 AND user_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, id, userID).Scan(
		&req.ID, &req.UserID, &req.Name, &req.Email, &req.Goal,
		&req.PreferredTimes, &req.Notes, &req.ReportID, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coaching request: %w", err)
	}

	return &req, nil
}
