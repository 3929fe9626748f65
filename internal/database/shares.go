package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// CreateShare creates a share link for a report
func (r *Repository) CreateShare(ctx context.Context, share *models.ReportShare) error {
	query := `
		INSERT INTO report_shares (share_id, report_id, owner_user_id, revoked, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		share.ID, share.ReportID, share.OwnerUserID, share.Revoked, share.ExpiresAt,
	).Scan(&share.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}

	return nil
}

// GetShare retrieves a share link by ID
func (r *Repository) GetShare(ctx context.Context, id string) (*models.ReportShare, error) {
	var share models.ReportShare

	query := `
		SELECT share_id, report_id, owner_user_id, revoked, created_at, expires_at
		FROM report_shares
		WHERE share_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&share.ID, &share.ReportID, &share.OwnerUserID, &share.Revoked,
		&share.CreatedAt, &share.ExpiresAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}

	return &share, nil
}

// GetActiveShareForReport returns an existing unrevoked, unexpired share
// for the report, so repeated share requests reuse the same link.
func (r *Repository) GetActiveShareForReport(ctx context.Context, reportID, ownerID string) (*models.ReportShare, error) {
	var share models.ReportShare

	query := `
		SELECT share_id, report_id, owner_user_id, revoked, created_at, expires_at
		FROM report_shares
		WHERE report_id = $1 AND owner_user_id = $2 AND NOT revoked AND expires_at > now()
		ORDER BY created_at DESC
		LIMIT 1
	`

	err := r.db.Pool.QueryRow(ctx, query, reportID, ownerID).Scan(
		&share.ID, &share.ReportID, &share.OwnerUserID, &share.Revoked,
		&share.CreatedAt, &share.ExpiresAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active share: %w", err)
	}

	return &share, nil
}

// RevokeShare marks a share link revoked, scoped to its owner
func (r *Repository) RevokeShare(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE report_shares SET revoked = TRUE
		WHERE share_id = $1 AND owner_user_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
