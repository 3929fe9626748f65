package analysis

import (
	"context"

	"github.com/epquotient/epq/pkg/models"
)

// MockClient is a deterministic AIClient for demos and local
// development, enabled by the analysis.mock config flag. It produces the
// same plausible metrics for every input without network calls.
type MockClient struct{}

// NewMockClient creates the canned-response client
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	text := "Thank you all for joining today. I want to walk you through our quarterly results and the road ahead. " +
		"Last quarter we faced a serious supply challenge, and the team responded with a plan that cut lead times by a third. " +
		"Because of that work, we enter this quarter with momentum, and I am confident in our direction."

	words := []Word{}
	t := 0.0
	for _, w := range splitWords(text) {
		end := t + 0.32
		words = append(words, Word{Word: w, Start: t, End: end})
		t = end + 0.08
	}
	// A couple of deliberate gaps so pause detection has work to do
	if len(words) > 20 {
		for i := 20; i < len(words); i++ {
			words[i].Start += 1.2
			words[i].End += 1.2
		}
	}
	if len(words) > 40 {
		for i := 40; i < len(words); i++ {
			words[i].Start += 0.6
			words[i].End += 0.6
		}
	}

	duration := 60.0
	if len(words) > 0 {
		duration = words[len(words)-1].End
	}

	return &Transcription{Text: text, Words: words, Duration: duration}, nil
}

func (m *MockClient) AnalyzeFrames(ctx context.Context, frames [][]byte) (models.PresenceMetrics, error) {
	return models.PresenceMetrics{
		PostureScore:    78,
		EyeContactRatio: 0.72,
		FacialExpressions: map[string]float64{
			"positive": 45, "neutral": 48, "negative": 7,
		},
		GestureRate:          6.5,
		FirstImpressionScore: 75,
	}, nil
}

func (m *MockClient) AnalyzeGravitas(ctx context.Context, transcript string, profile *models.Profile) (models.GravitasMetrics, error) {
	return models.GravitasMetrics{
		CommandingPresence:    74,
		Decisiveness:          79,
		PoiseUnderPressure:    71,
		EmotionalIntelligence: 68,
		VisionArticulation:    76,
		OverallGravitas:       73.6,
		KeyObservations: []string{
			"Direct, confident framing of results",
			"Causal reasoning supports decisiveness",
		},
	}, nil
}

func (m *MockClient) AnalyzeStorytelling(ctx context.Context, transcript string, profile *models.Profile) (models.StorytellingMetrics, error) {
	structure, authenticity := 72.0, 70.0
	concreteness, pacing := 75.0, 68.0
	excerpt := "Last quarter we faced a serious supply challenge, and the team responded"

	return models.StorytellingMetrics{
		HasStory:           true,
		NarrativeStructure: &structure,
		Authenticity:       &authenticity,
		Concreteness:       &concreteness,
		Pacing:             &pacing,
		StoryExcerpt:       &excerpt,
		Observations:       []string{"Clear challenge-response arc with a concrete outcome"},
	}, nil
}

func (m *MockClient) CoachingTips(ctx context.Context, metrics models.DetailedMetrics, scores models.Scores) ([]string, error) {
	return []string{
		"Your pacing sits close to the ideal range; keep it",
		"Open with your conclusion to sharpen commanding presence",
		"Add one more concrete metric when describing outcomes",
		"Hold eye contact through transitions between points",
		"Practice strategic pauses before key points",
	}, nil
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
