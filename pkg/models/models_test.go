package models

import (
	"testing"
)

func TestTerminalStatus(t *testing.T) {
	terminal := []string{JobStatusCompleted, JobStatusFailed}
	for _, s := range terminal {
		if !TerminalStatus(s) {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	active := []string{JobStatusPending, JobStatusTranscribing, JobStatusAudioAnalysis, JobStatusVideoAnalysis, JobStatusNLPAnalysis, JobStatusScoring}
	for _, s := range active {
		if TerminalStatus(s) {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestValidRetentionPolicy(t *testing.T) {
	for _, p := range RetentionPolicies {
		if !ValidRetentionPolicy(p) {
			t.Errorf("expected %s to be valid", p)
		}
	}

	if ValidRetentionPolicy("2_weeks") {
		t.Error("2_weeks should not be a valid policy")
	}

	if RetentionPeriods[RetentionPermanent] != nil {
		t.Error("permanent policy must have no deletion period")
	}

	if days := RetentionPeriods[Retention1Year]; days == nil || *days != 365 {
		t.Error("1_year policy must map to 365 days")
	}
}

func TestDetailedMetricsRoundTrip(t *testing.T) {
	structure := 72.0
	m := DetailedMetrics{
		Communication: CommunicationMetrics{
			SpeakingRate: SpeakingRate{WPM: 148.2, WordCount: 312},
			Pauses:       []Pause{{Start: 1.2, End: 2.5, Duration: 1.3, Type: "strategic"}},
		},
		Presence: PresenceMetrics{PostureScore: 80, EyeContactRatio: 0.65},
		Gravitas: GravitasMetrics{OverallGravitas: 71.5},
		Storytelling: StorytellingMetrics{
			HasStory:           true,
			NarrativeStructure: &structure,
		},
	}

	value, err := m.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded DetailedMetrics
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if decoded.Communication.SpeakingRate.WPM != 148.2 {
		t.Errorf("expected WPM 148.2, got %v", decoded.Communication.SpeakingRate.WPM)
	}
	if !decoded.Storytelling.HasStory || decoded.Storytelling.NarrativeStructure == nil {
		t.Error("storytelling metrics lost in round trip")
	}
}
