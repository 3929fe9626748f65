package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epquotient/epq/pkg/models"
)

func f(v float64) *float64 { return &v }

func sampleReport() *models.Report {
	return &models.Report{
		ID:                 "report_abc123",
		UserID:             "user_1",
		JobID:              "job_1",
		Transcript:         "Good morning everyone.",
		OverallScore:       82,
		GravitasScore:      75,
		CommunicationScore: 88,
		PresenceScore:      80,
		StorytellingScore:  f(70),
		DetailedMetrics: models.DetailedMetrics{
			Communication: models.CommunicationMetrics{
				SpeakingRate: models.SpeakingRate{WPM: 148},
				FillerWords:  models.FillerAnalysis{Count: 4, RatePerMinute: 1.3},
				Pauses:       []models.Pause{{Start: 2, End: 2.6, Duration: 0.6, Type: "brief"}},
			},
			Presence: models.PresenceMetrics{
				PostureScore:         78,
				EyeContactRatio:      0.65,
				GestureRate:          6,
				FirstImpressionScore: 74,
			},
			Gravitas: models.GravitasMetrics{
				CommandingPresence:    74,
				Decisiveness:          79,
				PoiseUnderPressure:    71,
				EmotionalIntelligence: 68,
				VisionArticulation:    76,
			},
			Storytelling: models.StorytellingMetrics{
				HasStory:           true,
				NarrativeStructure: f(72),
				Authenticity:       f(70),
				Concreteness:       f(75),
				Pacing:             f(68),
			},
		},
		CoachingTips: []string{
			"Pause before key points to build anticipation",
			"Replace filler words with silence",
		},
		CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	data, err := Render(sampleReport())
	require.NoError(t, err)
	assert.Greater(t, len(data), 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRender_NoStorytelling(t *testing.T) {
	r := sampleReport()
	r.StorytellingScore = nil
	r.DetailedMetrics.Storytelling = models.StorytellingMetrics{HasStory: false}

	assert.NotPanics(t, func() {
		data, err := Render(r)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestRender_EmptyReport(t *testing.T) {
	r := &models.Report{ID: "report_empty"}
	data, err := Render(r)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBuild_PaginatesLongTipLists(t *testing.T) {
	r := sampleReport()
	r.CoachingTips = nil
	for i := 0; i < 40; i++ {
		r.CoachingTips = append(r.CoachingTips,
			fmt.Sprintf("Tip %d: rehearse the opening thirty seconds of your talk until the delivery feels unforced, then record yourself again and compare", i+1))
	}

	pdf := build(r)
	assert.GreaterOrEqual(t, pdf.PageCount(), 2)
	assert.NoError(t, pdf.Error())
}

func TestBuild_SinglePageFitsShortReport(t *testing.T) {
	pdf := build(sampleReport())
	assert.NoError(t, pdf.Error())
	assert.GreaterOrEqual(t, pdf.PageCount(), 1)
}

func TestScoreLabel(t *testing.T) {
	cases := []struct {
		score float64
		label string
	}{
		{95, "Exceptional"},
		{82, "Excellent"},
		{75, "Strong"},
		{63, "Developing"},
		{55, "Emerging"},
		{40, "Needs Focus"},
	}
	for _, tc := range cases {
		label, _ := scoreLabel(tc.score)
		assert.Equal(t, tc.label, label, "score %.0f", tc.score)
	}
}

func TestFilename(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "EP_Report_2026_03_10.pdf", Filename(r))
}
