package analysis

import (
	"math"

	"github.com/epquotient/epq/pkg/models"
)

// CommunicationScore blends pace, filler discipline and pause usage.
// Pace is penalized 2 points per WPM away from 150; fillers cost 20
// points per occurrence per minute; pauses earn credit up to 100.
func CommunicationScore(m models.CommunicationMetrics) float64 {
	wpmScore := math.Max(0, 100-math.Abs(m.SpeakingRate.WPM-150)*2)
	fillerScore := math.Max(0, 100-m.FillerWords.RatePerMinute*20)
	pauseScore := math.Min(100, 60+float64(len(m.Pauses))*2)

	return wpmScore*0.4 + fillerScore*0.3 + pauseScore*0.3
}

// PresenceScore blends posture, eye contact and facial expression mix.
// Neutral expressions count at half the weight of positive ones.
func PresenceScore(m models.PresenceMetrics) float64 {
	eyeContact := m.EyeContactRatio * 100
	facial := m.FacialExpressions["positive"] + m.FacialExpressions["neutral"]*0.5

	return m.PostureScore*0.35 + eyeContact*0.35 + facial*0.30
}

// StorytellingScore returns nil when no story structure was detected.
func StorytellingScore(m models.StorytellingMetrics) *float64 {
	if !m.HasStory {
		return nil
	}

	score := deref(m.NarrativeStructure)*0.3 +
		deref(m.Authenticity)*0.3 +
		deref(m.Concreteness)*0.25 +
		deref(m.Pacing)*0.15
	return &score
}

// CalculateScores produces the four dimension scores and the weighted
// overall. Weights are 25/35/25/15; when storytelling is absent the
// remaining dimensions reweight to 30/40/30.
func CalculateScores(metrics models.DetailedMetrics) models.Scores {
	communication := CommunicationScore(metrics.Communication)
	presence := PresenceScore(metrics.Presence)
	gravitas := metrics.Gravitas.OverallGravitas
	storytelling := StorytellingScore(metrics.Storytelling)

	var overall float64
	if storytelling == nil {
		overall = gravitas*0.30 + communication*0.40 + presence*0.30
	} else {
		overall = gravitas*0.25 + communication*0.35 + presence*0.25 + *storytelling*0.15
	}

	scores := models.Scores{
		Overall:       round1(overall),
		Gravitas:      round1(gravitas),
		Communication: round1(communication),
		Presence:      round1(presence),
	}
	if storytelling != nil {
		rounded := round1(*storytelling)
		scores.Storytelling = &rounded
	}

	return scores
}

func deref(v *float64) float64 {
	if v == nil {
		return 60
	}
	return *v
}
