package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           string    `json:"user_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Picture      *string   `json:"picture,omitempty" db:"picture"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session represents an active session token. The token itself is a signed
// JWT; the row exists so logout can revoke it before expiry.
type Session struct {
	TokenID   string    `json:"-" db:"token_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Profile holds the role context collected once after signup. It feeds the
// NLP analysis prompts so scoring is calibrated to seniority.
type Profile struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Role            string    `json:"role" db:"role"`
	SeniorityLevel  string    `json:"seniority_level" db:"seniority_level"`
	YearsExperience *int      `json:"years_experience,omitempty" db:"years_experience"`
	Industry        *string   `json:"industry,omitempty" db:"industry"`
	CompanySize     *string   `json:"company_size,omitempty" db:"company_size"`
	PrimaryGoal     *string   `json:"primary_goal,omitempty" db:"primary_goal"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// UserSettings holds per-user defaults such as the retention policy applied
// to new uploads.
type UserSettings struct {
	UserID           string    `json:"user_id" db:"user_id"`
	DefaultRetention string    `json:"default_retention" db:"default_retention"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
