package models

import (
	"time"
)

// Subscription tracks a user's tier, expiry and monthly usage
type Subscription struct {
	UserID             string     `json:"user_id" db:"user_id"`
	Email              string     `json:"email" db:"email"`
	Tier               string     `json:"tier" db:"tier"`
	Status             string     `json:"status" db:"status"`
	StartedAt          time.Time  `json:"started_at" db:"started_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	VideosUsedThisMonth int       `json:"videos_used_this_month" db:"videos_used_this_month"`
	IsWhitelisted      bool       `json:"is_whitelisted" db:"is_whitelisted"`
}

// Subscription tiers and statuses
const (
	TierFree       = "free"
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"

	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// TierSpec describes the limits and features of one tier. A -1 limit means
// unlimited.
type TierSpec struct {
	Name                string   `json:"name"`
	TrialDays           int      `json:"trial_days,omitempty"`
	VideoLimit          int      `json:"video_limit"`
	SimulatorLimit      int      `json:"simulator_limit"`
	LearningBytesLimit  int      `json:"learning_bytes_limit"`
	CanDownload         bool     `json:"can_download"`
	Features            []string `json:"features"`
}

// Tiers is the fixed tier table.
var Tiers = map[string]TierSpec{
	TierFree: {
		Name:               "Free Trial",
		TrialDays:          2,
		VideoLimit:         1,
		SimulatorLimit:     2,
		LearningBytesLimit: 2,
		CanDownload:        false,
		Features:           []string{"basic_report", "preview_only"},
	},
	TierBasic: {
		Name:               "Basic",
		VideoLimit:         7,
		SimulatorLimit:     10,
		LearningBytesLimit: -1,
		CanDownload:        true,
		Features:           []string{"basic_ep_score", "report_download", "basic_analytics"},
	},
	TierPro: {
		Name:               "Pro",
		VideoLimit:         -1,
		SimulatorLimit:     -1,
		LearningBytesLimit: -1,
		CanDownload:        true,
		Features:           []string{"advanced_ep_score", "report_download", "report_sharing", "advanced_analytics", "priority_support"},
	},
	TierEnterprise: {
		Name:               "Enterprise",
		VideoLimit:         -1,
		SimulatorLimit:     -1,
		LearningBytesLimit: -1,
		CanDownload:        true,
		Features:           []string{"custom_branding", "team_management", "sla"},
	},
}

// Device is a coarse client-derived fingerprint used for trial-abuse
// detection, never as a security boundary.
type Device struct {
	Fingerprint   string    `json:"fingerprint" db:"fingerprint"`
	UserID        *string   `json:"user_id,omitempty" db:"user_id"`
	Email         *string   `json:"email,omitempty" db:"email"`
	FirstSeen     time.Time `json:"first_seen" db:"first_seen"`
	LastSeen      time.Time `json:"last_seen" db:"last_seen"`
	FreeTrialUsed bool      `json:"free_trial_used" db:"free_trial_used"`
}

// PendingUpgrade is a paid-tier upgrade awaiting payment confirmation.
type PendingUpgrade struct {
	UserID           string    `json:"user_id" db:"user_id"`
	Tier             string    `json:"tier" db:"tier"`
	BillingCycle     string    `json:"billing_cycle" db:"billing_cycle"`
	PaymentSessionID string    `json:"payment_session_id" db:"payment_session_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// CoachingRequest is a human-coaching inquiry submitted from a report.
type CoachingRequest struct {
	ID             string    `json:"request_id" db:"request_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Goal           string    `json:"goal" db:"goal"`
	PreferredTimes string    `json:"preferred_times" db:"preferred_times"`
	Notes          string    `json:"notes" db:"notes"`
	ReportID       *string   `json:"report_id,omitempty" db:"report_id"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
