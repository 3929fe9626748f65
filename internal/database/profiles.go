package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// GetProfile retrieves a user's role profile
func (r *Repository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile

	query := `
		SELECT id, user_id, role, seniority_level, years_experience, industry,
			company_size, primary_goal, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Role, &profile.SeniorityLevel,
		&profile.YearsExperience, &profile.Industry, &profile.CompanySize,
		&profile.PrimaryGoal, &profile.CreatedAt, &profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpsertProfile creates or updates a user's role profile
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	query := `
		INSERT INTO profiles (id, user_id, role, seniority_level, years_experience,
			industry, company_size, primary_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			seniority_level = EXCLUDED.seniority_level,
			years_experience = EXCLUDED.years_experience,
			industry = EXCLUDED.industry,
			company_size = EXCLUDED.company_size,
			primary_goal = EXCLUDED.primary_goal,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		profile.ID, profile.UserID, profile.Role, profile.SeniorityLevel,
		profile.YearsExperience, profile.Industry, profile.CompanySize, profile.PrimaryGoal,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetUserSettings retrieves per-user defaults, falling back to the
// 30-day retention policy when no row exists yet.
func (r *Repository) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings

	query := `
		SELECT user_id, default_retention, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&settings.UserID, &settings.DefaultRetention, &settings.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return &models.UserSettings{
			UserID:           userID,
			DefaultRetention: models.Retention30Days,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}

	return &settings, nil
}

// SetDefaultRetention stores the retention policy applied to new uploads
func (r *Repository) SetDefaultRetention(ctx context.Context, userID, policy string) error {
	query := `
		INSERT INTO user_settings (user_id, default_retention)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			default_retention = EXCLUDED.default_retention,
			updated_at = now()
	`

	if _, err := r.db.Pool.Exec(ctx, query, userID, policy); err != nil {
		return fmt.Errorf("failed to set default retention: %w", err)
	}
	return nil
}
