// Package content serves the rotating practice scenarios, training modules
// and daily tips. Rotation is deterministic from the clock so every instance
// serves the same content without coordination.
package content

import (
	"fmt"
	"time"
)

// Rotation periods in days per content kind.
const (
	ScenarioPeriodDays = 3
	ModulePeriodDays   = 7
	TipPeriodDays      = 1
)

// rotationEpoch anchors period numbering so it is stable across restarts.
var rotationEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// RotationInfo describes the current rotation period and time until refresh.
type RotationInfo struct {
	PeriodNumber       int       `json:"period_number"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	RemainingSeconds   int       `json:"remaining_seconds"`
	RemainingHours     int       `json:"remaining_hours"`
	RemainingMinutes   int       `json:"remaining_minutes"`
	RemainingDays      int       `json:"remaining_days"`
	RemainingFormatted string    `json:"remaining_formatted"`
	RefreshPeriodDays  int       `json:"refresh_period_days"`
}

func periodInfo(now time.Time, periodDays int) RotationInfo {
	now = now.UTC()
	daysSinceEpoch := int(now.Sub(rotationEpoch).Hours() / 24)
	periodNumber := daysSinceEpoch / periodDays

	start := rotationEpoch.AddDate(0, 0, periodNumber*periodDays)
	end := start.AddDate(0, 0, periodDays)

	remaining := end.Sub(now)
	remainingSeconds := int(remaining.Seconds())

	return RotationInfo{
		PeriodNumber:       periodNumber,
		PeriodStart:        start,
		PeriodEnd:          end,
		RemainingSeconds:   remainingSeconds,
		RemainingHours:     remainingSeconds / 3600,
		RemainingMinutes:   (remainingSeconds % 3600) / 60,
		RemainingDays:      remainingSeconds / 86400,
		RemainingFormatted: formatRemaining(remaining),
		RefreshPeriodDays:  periodDays,
	}
}

func formatRemaining(remaining time.Duration) string {
	total := int(remaining.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
