package models

import (
	"time"
)

// Video represents an uploaded recording awaiting or holding analysis
type Video struct {
	ID                string     `json:"video_id" db:"video_id"`
	UserID            string     `json:"user_id" db:"user_id"`
	Filename          string     `json:"filename" db:"filename"`
	StorageKey        string     `json:"-" db:"storage_key"`
	Size              int64      `json:"file_size" db:"file_size"`
	ContentType       string     `json:"format" db:"content_type"`
	Duration          *float64   `json:"duration,omitempty" db:"duration"`
	RetentionPolicy   string     `json:"retention_policy" db:"retention_policy"`
	ScheduledDeletion *time.Time `json:"scheduled_deletion,omitempty" db:"scheduled_deletion"`
	UploadedAt        time.Time  `json:"uploaded_at" db:"uploaded_at"`
}

// Retention policy names. A nil period means the video is kept until the
// owner deletes it.
const (
	Retention7Days     = "7_days"
	Retention30Days    = "30_days"
	Retention90Days    = "90_days"
	Retention1Year     = "1_year"
	RetentionPermanent = "permanent"
)

// RetentionPeriods maps policy names to their duration in days. Permanent
// maps to nil.
var RetentionPeriods = map[string]*int{
	Retention7Days:     intPtr(7),
	Retention30Days:    intPtr(30),
	Retention90Days:    intPtr(90),
	Retention1Year:     intPtr(365),
	RetentionPermanent: nil,
}

// RetentionPolicies lists the valid policy names in display order.
var RetentionPolicies = []string{
	Retention7Days, Retention30Days, Retention90Days, Retention1Year, RetentionPermanent,
}

// ValidRetentionPolicy reports whether name is a known retention policy.
func ValidRetentionPolicy(name string) bool {
	_, ok := RetentionPeriods[name]
	return ok
}

func intPtr(n int) *int { return &n }
