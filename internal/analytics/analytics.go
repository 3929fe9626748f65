// Package analytics aggregates report history into the dashboard
// summary. It is pure: no storage, clock injected by the caller.
package analytics

import (
	"math"
	"time"

	"github.com/epquotient/epq/pkg/models"
)

// Window restricts the summary to recent reports.
type Window string

const (
	WindowAll    Window = "all"
	Window7Days  Window = "7d"
	Window30Days Window = "30d"
	Window90Days Window = "90d"
)

// ParseWindow maps a query parameter to a Window, defaulting to all.
func ParseWindow(s string) Window {
	switch s {
	case "7d":
		return Window7Days
	case "30d":
		return Window30Days
	case "90d":
		return Window90Days
	default:
		return WindowAll
	}
}

func (w Window) days() int {
	switch w {
	case Window7Days:
		return 7
	case Window30Days:
		return 30
	case Window90Days:
		return 90
	default:
		return 0
	}
}

// Averages holds per-dimension arithmetic means over the window.
type Averages struct {
	Overall       float64 `json:"overall"`
	Gravitas      float64 `json:"gravitas"`
	Communication float64 `json:"communication"`
	Presence      float64 `json:"presence"`
	Storytelling  float64 `json:"storytelling"`
}

// Summary is the dashboard aggregate for one user.
type Summary struct {
	TotalReports       int      `json:"total_reports"`
	Averages           Averages `json:"averages"`
	BestScore          float64  `json:"best_score"`
	WorstScore         float64  `json:"worst_score"`
	TrendPercent       float64  `json:"trend_percent"`
	StrongestDimension string   `json:"strongest_dimension"`
	WeakestDimension   string   `json:"weakest_dimension"`
}

// Summarize computes the dashboard summary from a user's reports. The
// slice must be ordered newest first, as the repository returns it.
// Storytelling averages only over reports that carry a storytelling
// score. Trend compares the two most recent reports in the window.
func Summarize(reports []*models.Report, window Window, now time.Time) Summary {
	filtered := filterByWindow(reports, window, now)

	summary := Summary{TotalReports: len(filtered)}
	if len(filtered) == 0 {
		return summary
	}

	var overall, gravitas, communication, presence, storytelling float64
	storyCount := 0
	best := filtered[0].OverallScore
	worst := filtered[0].OverallScore

	for _, r := range filtered {
		overall += r.OverallScore
		gravitas += r.GravitasScore
		communication += r.CommunicationScore
		presence += r.PresenceScore
		if r.StorytellingScore != nil {
			storytelling += *r.StorytellingScore
			storyCount++
		}
		if r.OverallScore > best {
			best = r.OverallScore
		}
		if r.OverallScore < worst {
			worst = r.OverallScore
		}
	}

	n := float64(len(filtered))
	storyN := float64(storyCount)
	if storyN == 0 {
		storyN = 1
	}

	summary.Averages = Averages{
		Overall:       round1(overall / n),
		Gravitas:      round1(gravitas / n),
		Communication: round1(communication / n),
		Presence:      round1(presence / n),
		Storytelling:  round1(storytelling / storyN),
	}
	summary.BestScore = best
	summary.WorstScore = worst
	summary.TrendPercent = trend(filtered)

	summary.StrongestDimension, summary.WeakestDimension = extremes(summary.Averages, storyCount > 0)

	return summary
}

func filterByWindow(reports []*models.Report, window Window, now time.Time) []*models.Report {
	days := window.days()
	if days == 0 {
		return reports
	}

	cutoff := now.AddDate(0, 0, -days)
	filtered := make([]*models.Report, 0, len(reports))
	for _, r := range reports {
		if !r.CreatedAt.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// trend is the percent change from the second-most-recent report to the
// most recent one, zero when fewer than two reports exist.
func trend(filtered []*models.Report) float64 {
	if len(filtered) < 2 {
		return 0
	}

	latest := filtered[0].OverallScore
	previous := filtered[1].OverallScore
	if previous == 0 {
		return 0
	}

	return round1((latest - previous) / previous * 100)
}

// extremes picks the strongest and weakest dimensions. Ties resolve by
// the fixed order gravitas, communication, presence, storytelling, so
// output is deterministic.
func extremes(avg Averages, hasStory bool) (strongest, weakest string) {
	type dim struct {
		name  string
		value float64
	}

	dims := []dim{
		{"gravitas", avg.Gravitas},
		{"communication", avg.Communication},
		{"presence", avg.Presence},
	}
	if hasStory {
		dims = append(dims, dim{"storytelling", avg.Storytelling})
	}

	strongest, weakest = dims[0].name, dims[0].name
	maxV, minV := dims[0].value, dims[0].value
	for _, d := range dims[1:] {
		if d.value > maxV {
			maxV, strongest = d.value, d.name
		}
		if d.value < minV {
			minV, weakest = d.value, d.name
		}
	}
	return strongest, weakest
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
