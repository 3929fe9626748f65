package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodInfo(t *testing.T) {
	// 10 days after the epoch, noon. Period 3 of the 3-day rotation runs
	// from day 9 to day 12.
	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	info := periodInfo(now, 3)

	assert.Equal(t, 3, info.PeriodNumber)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), info.PeriodStart)
	assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), info.PeriodEnd)
	assert.Equal(t, 36*3600, info.RemainingSeconds)
	assert.Equal(t, "1d 12h 0m", info.RemainingFormatted)
	assert.Equal(t, 3, info.RefreshPeriodDays)
}

func TestPeriodInfo_StableWithinPeriod(t *testing.T) {
	a := periodInfo(time.Date(2026, 5, 4, 0, 30, 0, 0, time.UTC), 7)
	b := periodInfo(time.Date(2026, 5, 4, 23, 30, 0, 0, time.UTC), 7)
	assert.Equal(t, a.PeriodNumber, b.PeriodNumber)
	assert.Equal(t, a.PeriodStart, b.PeriodStart)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "2d 3h 15m", formatRemaining(51*time.Hour+15*time.Minute))
	assert.Equal(t, "3h 5m", formatRemaining(3*time.Hour+5*time.Minute))
	assert.Equal(t, "42m", formatRemaining(42*time.Minute))
}

func TestCurrentScenarios_RotatesEveryThreeDays(t *testing.T) {
	day0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	set0 := CurrentScenarios(day0)
	set1 := CurrentScenarios(day0.AddDate(0, 0, 3))

	assert.Len(t, set0.Scenarios, 5)
	assert.Equal(t, "Scenario Set 1", set0.PoolName)
	assert.Equal(t, "Scenario Set 2", set1.PoolName)
	assert.NotEqual(t, set0.Scenarios[0].Title, set1.Scenarios[0].Title)

	// Full cycle wraps back to the first pool.
	set4 := CurrentScenarios(day0.AddDate(0, 0, 12))
	assert.Equal(t, set0.PoolName, set4.PoolName)
}

func TestCurrentModules_WeeklyThemes(t *testing.T) {
	day0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	week1 := CurrentModules(day0)
	assert.Equal(t, "Communication Fundamentals", week1.WeekTheme)
	assert.Equal(t, 1, week1.WeekNumber)
	assert.Len(t, week1.Modules, 4)

	week3 := CurrentModules(day0.AddDate(0, 0, 14))
	assert.Equal(t, "Gravitas Building", week3.WeekTheme)
	assert.Equal(t, 3, week3.WeekNumber)
}

func TestCurrentTip_DailyRotation(t *testing.T) {
	day0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	tip0 := CurrentTip(day0)
	tip1 := CurrentTip(day0.AddDate(0, 0, 1))

	assert.Equal(t, 1, tip0.TipNumber)
	assert.Equal(t, 2, tip1.TipNumber)
	assert.Equal(t, len(learningTips), tip0.TotalTips)
	assert.NotEqual(t, tip0.Tip, tip1.Tip)

	// Same day, same tip.
	assert.Equal(t, tip0.Tip, CurrentTip(day0.Add(10*time.Hour)).Tip)
}

func TestTEDTalks(t *testing.T) {
	talks := TEDTalks()
	require.Len(t, talks, 5)
	assert.Equal(t, "Simon Sinek", talks[0].Speaker)
	for _, talk := range talks {
		assert.Contains(t, talk.Link, "https://www.ted.com/talks/")
	}
}

func TestStaticGenerator(t *testing.T) {
	gen := StaticGenerator{}

	mod, err := gen.GenerateModule(context.Background(), "strategic-pauses", nil)
	require.NoError(t, err)
	assert.Equal(t, "strategic-pauses", mod.ModuleID)
	assert.Contains(t, mod.Content, "strategic pause techniques for executives")
	assert.False(t, mod.GeneratedAt.IsZero())

	unknown, err := gen.GenerateModule(context.Background(), "does-not-exist", nil)
	require.NoError(t, err)
	assert.Contains(t, unknown.Content, "executive presence")
}
