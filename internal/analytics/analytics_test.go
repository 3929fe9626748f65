package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/epquotient/epq/pkg/models"
)

func report(overall, gravitas, communication, presence float64, storytelling *float64, age time.Duration, now time.Time) *models.Report {
	return &models.Report{
		OverallScore:       overall,
		GravitasScore:      gravitas,
		CommunicationScore: communication,
		PresenceScore:      presence,
		StorytellingScore:  storytelling,
		CreatedAt:          now.Add(-age),
	}
}

func f(v float64) *float64 { return &v }

func TestSummarize_Averages(t *testing.T) {
	now := time.Now()
	reports := []*models.Report{
		report(80, 70, 90, 80, f(60), time.Hour, now),
		report(60, 50, 70, 60, nil, 2*time.Hour, now),
	}

	s := Summarize(reports, WindowAll, now)

	assert.Equal(t, 2, s.TotalReports)
	assert.Equal(t, 70.0, s.Averages.Overall)
	assert.Equal(t, 60.0, s.Averages.Gravitas)
	assert.Equal(t, 80.0, s.Averages.Communication)
	assert.Equal(t, 70.0, s.Averages.Presence)
	// Storytelling averages only over the single report carrying it
	assert.Equal(t, 60.0, s.Averages.Storytelling)

	for _, v := range []float64{s.Averages.Overall, s.Averages.Gravitas, s.Averages.Communication, s.Averages.Presence, s.Averages.Storytelling} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, WindowAll, time.Now())
	assert.Equal(t, 0, s.TotalReports)
	assert.Equal(t, 0.0, s.TrendPercent)
}

func TestSummarize_TrendSingleReport(t *testing.T) {
	now := time.Now()
	s := Summarize([]*models.Report{
		report(75, 70, 80, 75, nil, time.Hour, now),
	}, WindowAll, now)

	assert.Equal(t, 0.0, s.TrendPercent)
}

func TestSummarize_Trend(t *testing.T) {
	now := time.Now()
	reports := []*models.Report{
		report(82, 75, 88, 80, nil, time.Hour, now),   // latest
		report(75, 70, 80, 72, nil, 2*time.Hour, now), // previous
		report(90, 85, 95, 88, nil, 3*time.Hour, now), // older, ignored by trend
	}

	s := Summarize(reports, WindowAll, now)

	expected := math.Round((82.0-75.0)/75.0*100*10) / 10
	assert.Equal(t, expected, s.TrendPercent)
}

func TestSummarize_WindowFiltersOldReports(t *testing.T) {
	now := time.Now()
	reports := []*models.Report{
		report(80, 70, 90, 80, nil, 24*time.Hour, now),
		report(40, 30, 50, 40, nil, 40*24*time.Hour, now),
	}

	s := Summarize(reports, Window30Days, now)

	assert.Equal(t, 1, s.TotalReports)
	assert.Equal(t, 80.0, s.Averages.Overall)
	assert.Equal(t, 0.0, s.TrendPercent) // only one report left in window
}

func TestFilterByWindow_Idempotent(t *testing.T) {
	now := time.Now()
	reports := []*models.Report{
		report(80, 70, 90, 80, nil, time.Hour, now),
		report(60, 50, 70, 60, nil, 10*24*time.Hour, now),
		report(40, 30, 50, 40, nil, 100*24*time.Hour, now),
	}

	once := filterByWindow(reports, Window30Days, now)
	twice := filterByWindow(once, Window30Days, now)

	assert.Equal(t, once, twice)
}

func TestSummarize_StrongestWeakestDistinct(t *testing.T) {
	now := time.Now()
	s := Summarize([]*models.Report{
		report(82, 75, 88, 80, f(70), time.Hour, now),
	}, WindowAll, now)

	assert.Equal(t, "communication", s.StrongestDimension)
	assert.Equal(t, "storytelling", s.WeakestDimension)
	assert.NotEqual(t, s.StrongestDimension, s.WeakestDimension)
}

func TestSummarize_TieBreakStable(t *testing.T) {
	now := time.Now()
	reports := []*models.Report{
		report(70, 70, 70, 70, f(70), time.Hour, now),
	}

	first := Summarize(reports, WindowAll, now)
	for i := 0; i < 10; i++ {
		again := Summarize(reports, WindowAll, now)
		assert.Equal(t, first.StrongestDimension, again.StrongestDimension)
		assert.Equal(t, first.WeakestDimension, again.WeakestDimension)
	}
}

func TestParseWindow(t *testing.T) {
	assert.Equal(t, Window7Days, ParseWindow("7d"))
	assert.Equal(t, Window30Days, ParseWindow("30d"))
	assert.Equal(t, Window90Days, ParseWindow("90d"))
	assert.Equal(t, WindowAll, ParseWindow("all"))
	assert.Equal(t, WindowAll, ParseWindow("garbage"))
}
