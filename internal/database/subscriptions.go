package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/epquotient/epq/pkg/models"
)

// GetSubscription retrieves a user's subscription
func (r *Repository) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription

	query := `
		SELECT user_id, email, tier, status, started_at, expires_at
		FROM subscriptions
		WHERE user_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&sub.UserID, &sub.Email, &sub.Tier, &sub.Status, &sub.StartedAt, &sub.ExpiresAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// UpsertSubscription creates or replaces a user's subscription
func (r *Repository) UpsertSubscription(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, email, tier, status, started_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			tier = EXCLUDED.tier,
			status = EXCLUDED.status,
			started_at = EXCLUDED.started_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err := r.db.Pool.Exec(ctx, query,
		sub.UserID, sub.Email, sub.Tier, sub.Status, sub.StartedAt, sub.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

// SetSubscriptionStatus updates only the status field
func (r *Repository) SetSubscriptionStatus(ctx context.Context, userID, status string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE subscriptions SET status = $2 WHERE user_id = $1`, userID, status)
	if err != nil {
		return fmt.Errorf("failed to set subscription status: %w", err)
	}
	return nil
}

// Devices

// GetDevice retrieves a device fingerprint record
func (r *Repository) GetDevice(ctx context.Context, fingerprint string) (*models.Device, error) {
	var device models.Device

	query := `
		SELECT fingerprint, user_id, email, first_seen, last_seen, free_trial_used
		FROM devices
		WHERE fingerprint = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, fingerprint).Scan(
		&device.Fingerprint, &device.UserID, &device.Email,
		&device.FirstSeen, &device.LastSeen, &device.FreeTrialUsed,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &device, nil
}

// TouchDevice records a sighting of a device fingerprint, creating the
// row on first sight and marking trial use when requested. Trial use is
// sticky: once marked it never clears.
func (r *Repository) TouchDevice(ctx context.Context, fingerprint string, userID, email *string, trialUsed bool) error {
	query := `
		INSERT INTO devices (fingerprint, user_id, email, first_seen, last_seen, free_trial_used)
		VALUES ($1, $2, $3, now(), now(), $4)
		ON CONFLICT (fingerprint) DO UPDATE SET
			last_seen = now(),
			user_id = COALESCE(EXCLUDED.user_id, devices.user_id),
			email = COALESCE(EXCLUDED.email, devices.email),
			free_trial_used = devices.free_trial_used OR EXCLUDED.free_trial_used
	`

	if _, err := r.db.Pool.Exec(ctx, query, fingerprint, userID, email, trialUsed); err != nil {
		return fmt.Errorf("failed to touch device: %w", err)
	}
	return nil
}

// Pending upgrades

// CreatePendingUpgrade records an initiated checkout awaiting payment
func (r *Repository) CreatePendingUpgrade(ctx context.Context, upgrade *models.PendingUpgrade) error {
	query := `
		INSERT INTO pending_upgrades (payment_session_id, user_id, tier, billing_cycle)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		upgrade.PaymentSessionID, upgrade.UserID, upgrade.Tier, upgrade.BillingCycle,
	).Scan(&upgrade.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create pending upgrade: %w", err)
	}

	return nil
}

// GetPendingUpgrade retrieves a pending upgrade by checkout session ID
func (r *Repository) GetPendingUpgrade(ctx context.Context, sessionID string) (*models.PendingUpgrade, error) {
	var upgrade models.PendingUpgrade

	query := `
		SELECT payment_session_id, user_id, tier, billing_cycle, created_at
		FROM pending_upgrades
		WHERE payment_session_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, sessionID).Scan(
		&upgrade.PaymentSessionID, &upgrade.UserID, &upgrade.Tier,
		&upgrade.BillingCycle, &upgrade.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending upgrade: %w", err)
	}

	return &upgrade, nil
}

// DeletePendingUpgrade removes a pending upgrade once resolved
func (r *Repository) DeletePendingUpgrade(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM pending_upgrades WHERE payment_session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete pending upgrade: %w", err)
	}
	return nil
}

// DeleteStalePendingUpgrades prunes checkouts older than the cutoff
func (r *Repository) DeleteStalePendingUpgrades(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM pending_upgrades WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale pending upgrades: %w", err)
	}
	return tag.RowsAffected(), nil
}
