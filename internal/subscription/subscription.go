// Package subscription enforces tier limits, the free trial lifecycle and
// paid upgrades through checkout sessions.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epquotient/epq/internal/cache"
	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/logging"
	"github.com/epquotient/epq/internal/payment"
	"github.com/epquotient/epq/pkg/models"
)

var (
	ErrTrialAlreadyUsed  = errors.New("free trial already used on this device or email")
	ErrExpired           = errors.New("subscription has expired")
	ErrVideoLimitReached = errors.New("monthly video limit reached")
	ErrUnknownTier       = errors.New("unknown subscription tier")
)

const trialDuration = 2 * 24 * time.Hour

// Service owns subscription state and limit checks.
type Service struct {
	repo      *database.Repository
	cache     *cache.Cache
	payments  *payment.Client
	whitelist []string
	log       *logging.Logger
}

func NewService(repo *database.Repository, c *cache.Cache, payments *payment.Client, whitelist []string, log *logging.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     c,
		payments:  payments,
		whitelist: whitelist,
		log:       log,
	}
}

// Status is the effective subscription state returned to clients.
type Status struct {
	Tier          string     `json:"tier"`
	Status        string     `json:"status"`
	IsWhitelisted bool       `json:"is_whitelisted"`
	VideoLimit    int        `json:"video_limit"`
	VideosUsed    int        `json:"videos_used"`
	CanDownload   bool       `json:"can_download"`
	Features      []string   `json:"features"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// Whitelisted reports whether the email has permanent pro access.
func (s *Service) Whitelisted(email string) bool {
	for _, w := range s.whitelist {
		if strings.EqualFold(w, email) {
			return true
		}
	}
	return false
}

// CheckStatus resolves the user's effective tier, creating a free trial on
// first sight and marking expiry lazily. A provided fingerprint is recorded
// against the account.
func (s *Service) CheckStatus(ctx context.Context, userID, email, fingerprint string) (*Status, error) {
	if s.Whitelisted(email) {
		pro := models.Tiers[models.TierPro]
		return &Status{
			Tier:          models.TierPro,
			Status:        models.SubscriptionActive,
			IsWhitelisted: true,
			VideoLimit:    pro.VideoLimit,
			CanDownload:   pro.CanDownload,
			Features:      pro.Features,
		}, nil
	}

	sub, err := s.repo.GetSubscription(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		sub, err = s.startTrial(ctx, userID, email)
	}
	if err != nil {
		return nil, err
	}

	if sub.ExpiresAt != nil && sub.ExpiresAt.Before(time.Now()) && sub.Status == models.SubscriptionActive {
		sub.Status = models.SubscriptionExpired
		if err := s.repo.SetSubscriptionStatus(ctx, userID, models.SubscriptionExpired); err != nil {
			return nil, err
		}
	}

	if fingerprint != "" {
		trialUsed := sub.Tier == models.TierFree
		if err := s.repo.TouchDevice(ctx, fingerprint, &userID, &email, trialUsed); err != nil {
			s.log.WithUserID(userID).ErrorWithErr("failed to record device fingerprint", err)
		}
		if trialUsed {
			if err := s.cache.MarkTrialUsed(ctx, fingerprint); err != nil {
				s.log.ErrorWithErr("failed to cache trial flag", err)
			}
		}
	}

	spec, ok := models.Tiers[sub.Tier]
	if !ok {
		spec = models.Tiers[models.TierFree]
	}

	used, err := s.videosUsed(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Status{
		Tier:        sub.Tier,
		Status:      sub.Status,
		VideoLimit:  spec.VideoLimit,
		VideosUsed:  used,
		CanDownload: spec.CanDownload,
		Features:    spec.Features,
		ExpiresAt:   sub.ExpiresAt,
	}, nil
}

func (s *Service) startTrial(ctx context.Context, userID, email string) (*models.Subscription, error) {
	now := time.Now().UTC()
	expires := now.Add(trialDuration)
	sub := &models.Subscription{
		UserID:    userID,
		Email:     email,
		Tier:      models.TierFree,
		Status:    models.SubscriptionActive,
		StartedAt: now,
		ExpiresAt: &expires,
	}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.log.WithUserID(userID).Info("free trial started")
	return sub, nil
}

// CanUseTrial reports whether the device and email are still eligible for a
// free trial. Fingerprints are advisory; the check fails open when no
// fingerprint was supplied.
func (s *Service) CanUseTrial(ctx context.Context, fingerprint, email string) (bool, error) {
	if fingerprint == "" {
		return true, nil
	}

	used, err := s.cache.TrialUsed(ctx, fingerprint)
	if err != nil {
		s.log.ErrorWithErr("trial cache lookup failed", err)
	}
	if used {
		return false, nil
	}

	device, err := s.repo.GetDevice(ctx, fingerprint)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return false, err
	}
	if device != nil && device.FreeTrialUsed {
		// Paid accounts keep access on any device.
		if device.UserID != nil {
			sub, err := s.repo.GetSubscription(ctx, *device.UserID)
			if err == nil && sub.Tier != models.TierFree {
				return true, nil
			}
		}
		return false, nil
	}

	return true, nil
}

// UpgradeResult is the outcome of an upgrade request: either the free trial
// was activated in place or the caller must complete checkout.
type UpgradeResult struct {
	Activated   bool   `json:"activated"`
	Tier        string `json:"tier"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

// Upgrade activates a free trial directly or starts a paid checkout and
// records the pending upgrade keyed by the checkout session.
func (s *Service) Upgrade(ctx context.Context, userID, email, tier, billingCycle, fingerprint string) (*UpgradeResult, error) {
	if _, ok := models.Tiers[tier]; !ok {
		return nil, ErrUnknownTier
	}

	if tier == models.TierFree {
		allowed, err := s.CanUseTrial(ctx, fingerprint, email)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrTrialAlreadyUsed
		}

		if _, err := s.startTrial(ctx, userID, email); err != nil {
			return nil, err
		}
		if fingerprint != "" {
			if err := s.repo.TouchDevice(ctx, fingerprint, &userID, &email, true); err != nil {
				s.log.ErrorWithErr("failed to mark trial device", err)
			}
			if err := s.cache.MarkTrialUsed(ctx, fingerprint); err != nil {
				s.log.ErrorWithErr("failed to cache trial flag", err)
			}
		}
		return &UpgradeResult{Activated: true, Tier: tier}, nil
	}

	session, err := s.payments.CreateSession(ctx, tier, billingCycle, email, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	pending := &models.PendingUpgrade{
		UserID:           userID,
		Tier:             tier,
		BillingCycle:     billingCycle,
		PaymentSessionID: session.ID,
	}
	if err := s.repo.CreatePendingUpgrade(ctx, pending); err != nil {
		return nil, err
	}

	return &UpgradeResult{Tier: tier, CheckoutURL: session.CheckoutURL}, nil
}

// ConfirmUpgrade settles a pending upgrade once its checkout session is
// paid. Called from the payment webhook.
func (s *Service) ConfirmUpgrade(ctx context.Context, sessionID string) error {
	verification, err := s.payments.Verify(ctx, sessionID)
	if err != nil {
		return err
	}
	if !verification.Verified {
		return fmt.Errorf("payment session %s not paid", sessionID)
	}

	pending, err := s.repo.GetPendingUpgrade(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	expires := now.AddDate(0, 1, 0)
	if pending.BillingCycle == "yearly" {
		expires = now.AddDate(1, 0, 0)
	}

	email := verification.Metadata["email"]
	sub := &models.Subscription{
		UserID:    pending.UserID,
		Email:     email,
		Tier:      pending.Tier,
		Status:    models.SubscriptionActive,
		StartedAt: now,
		ExpiresAt: &expires,
	}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return err
	}
	if err := s.repo.DeletePendingUpgrade(ctx, sessionID); err != nil {
		s.log.ErrorWithErr("failed to delete pending upgrade", err)
	}

	s.log.WithUserID(pending.UserID).Infof("subscription upgraded to %s (%s)", pending.Tier, pending.BillingCycle)
	return nil
}

// CheckVideoLimit verifies the user may start another analysis this month.
// Returns the remaining quota, -1 when unlimited.
func (s *Service) CheckVideoLimit(ctx context.Context, userID, email string) (int, error) {
	status, err := s.CheckStatus(ctx, userID, email, "")
	if err != nil {
		return 0, err
	}

	if status.Status == models.SubscriptionExpired {
		return 0, ErrExpired
	}
	if status.VideoLimit == -1 {
		return -1, nil
	}
	if status.VideosUsed >= status.VideoLimit {
		return 0, ErrVideoLimitReached
	}
	return status.VideoLimit - status.VideosUsed, nil
}

// IncrementUsage bumps the monthly usage counter. The DB upload count is the
// source of truth for limit checks; the cached stat feeds dashboards.
func (s *Service) IncrementUsage(ctx context.Context, userID string) error {
	key := fmt.Sprintf("usage:%s:%s", userID, time.Now().UTC().Format("2006-01"))
	return s.cache.IncrementStat(ctx, key)
}

func (s *Service) videosUsed(ctx context.Context, userID string) (int, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.repo.CountVideosSince(ctx, userID, monthStart)
}
