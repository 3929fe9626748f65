package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epquotient/epq/pkg/models"
)

func commMetrics(wpm, fillerRate float64, pauseCount int) models.CommunicationMetrics {
	pauses := make([]models.Pause, pauseCount)
	return models.CommunicationMetrics{
		SpeakingRate: models.SpeakingRate{WPM: wpm},
		FillerWords:  models.FillerAnalysis{RatePerMinute: fillerRate},
		Pauses:       pauses,
	}
}

func TestCommunicationScore(t *testing.T) {
	// Ideal pace, no fillers, 20 pauses saturate the pause credit
	score := CommunicationScore(commMetrics(150, 0, 20))
	assert.InDelta(t, 100*0.4+100*0.3+100*0.3, score, 0.001)

	// 170 WPM costs 40 points on the pace component
	score = CommunicationScore(commMetrics(170, 0, 0))
	assert.InDelta(t, 60*0.4+100*0.3+60*0.3, score, 0.001)

	// Heavy filler usage floors the filler component at zero
	score = CommunicationScore(commMetrics(150, 6, 0))
	assert.InDelta(t, 100*0.4+0*0.3+60*0.3, score, 0.001)
}

func TestPresenceScore(t *testing.T) {
	m := models.PresenceMetrics{
		PostureScore:    80,
		EyeContactRatio: 0.7,
		FacialExpressions: map[string]float64{
			"positive": 40, "neutral": 50, "negative": 10,
		},
	}

	expected := 80*0.35 + 70*0.35 + (40+50*0.5)*0.30
	assert.InDelta(t, expected, PresenceScore(m), 0.001)
}

func TestStorytellingScore_NoStory(t *testing.T) {
	assert.Nil(t, StorytellingScore(models.StorytellingMetrics{HasStory: false}))
}

func TestStorytellingScore_WithStory(t *testing.T) {
	structure, authenticity := 80.0, 70.0
	concreteness, pacing := 60.0, 50.0
	m := models.StorytellingMetrics{
		HasStory:           true,
		NarrativeStructure: &structure,
		Authenticity:       &authenticity,
		Concreteness:       &concreteness,
		Pacing:             &pacing,
	}

	score := StorytellingScore(m)
	if assert.NotNil(t, score) {
		assert.InDelta(t, 80*0.3+70*0.3+60*0.25+50*0.15, *score, 0.001)
	}
}

func TestCalculateScores_Weights(t *testing.T) {
	structure, authenticity := 80.0, 80.0
	concreteness, pacing := 80.0, 80.0

	detailed := models.DetailedMetrics{
		Communication: commMetrics(150, 0, 20),
		Presence: models.PresenceMetrics{
			PostureScore:      100,
			EyeContactRatio:   1.0,
			FacialExpressions: map[string]float64{"positive": 100},
		},
		Gravitas: models.GravitasMetrics{OverallGravitas: 90},
		Storytelling: models.StorytellingMetrics{
			HasStory:           true,
			NarrativeStructure: &structure,
			Authenticity:       &authenticity,
			Concreteness:       &concreteness,
			Pacing:             &pacing,
		},
	}

	scores := CalculateScores(detailed)

	assert.Equal(t, 90.0, scores.Gravitas)
	assert.Equal(t, 100.0, scores.Communication)
	assert.Equal(t, 100.0, scores.Presence)
	if assert.NotNil(t, scores.Storytelling) {
		assert.Equal(t, 80.0, *scores.Storytelling)
	}

	expected := math.Round((90*0.25+100*0.35+100*0.25+80*0.15)*10) / 10
	assert.Equal(t, expected, scores.Overall)
}

func TestCalculateScores_ReweightsWithoutStory(t *testing.T) {
	detailed := models.DetailedMetrics{
		Communication: commMetrics(150, 0, 20),
		Presence: models.PresenceMetrics{
			PostureScore:      100,
			EyeContactRatio:   1.0,
			FacialExpressions: map[string]float64{"positive": 100},
		},
		Gravitas:     models.GravitasMetrics{OverallGravitas: 90},
		Storytelling: models.StorytellingMetrics{HasStory: false},
	}

	scores := CalculateScores(detailed)

	assert.Nil(t, scores.Storytelling)
	expected := math.Round((90*0.30+100*0.40+100*0.30)*10) / 10
	assert.Equal(t, expected, scores.Overall)
}

func TestCalculateScores_Rounding(t *testing.T) {
	detailed := models.DetailedMetrics{
		Communication: commMetrics(153, 1.3, 7),
		Presence: models.PresenceMetrics{
			PostureScore:      73,
			EyeContactRatio:   0.61,
			FacialExpressions: map[string]float64{"positive": 37, "neutral": 51},
		},
		Gravitas:     models.GravitasMetrics{OverallGravitas: 66.7},
		Storytelling: models.StorytellingMetrics{HasStory: false},
	}

	scores := CalculateScores(detailed)

	for _, v := range []float64{scores.Overall, scores.Gravitas, scores.Communication, scores.Presence} {
		assert.Equal(t, math.Round(v*10)/10, v, "scores carry one decimal")
	}
}
