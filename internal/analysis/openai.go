package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/epquotient/epq/pkg/models"
)

// Transcription is the word-timestamped output of speech recognition.
type Transcription struct {
	Text     string
	Words    []Word
	Duration float64
}

// AIClient abstracts the model calls the pipeline makes, so the worker
// can swap in a deterministic mock.
type AIClient interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcription, error)
	AnalyzeFrames(ctx context.Context, frames [][]byte) (models.PresenceMetrics, error)
	AnalyzeGravitas(ctx context.Context, transcript string, profile *models.Profile) (models.GravitasMetrics, error)
	AnalyzeStorytelling(ctx context.Context, transcript string, profile *models.Profile) (models.StorytellingMetrics, error)
	CoachingTips(ctx context.Context, metrics models.DetailedMetrics, scores models.Scores) ([]string, error)
}

// OpenAIClient implements AIClient against the OpenAI API: whisper-1 for
// transcription, gpt-4o for vision and language analysis.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates an OpenAI-backed analysis client
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey)}
}

// Transcribe runs whisper-1 with word-level timestamps
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularityWord,
			openai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	words := make([]Word, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, Word{Word: w.Word, Start: w.Start, End: w.End})
	}

	return &Transcription{
		Text:     resp.Text,
		Words:    words,
		Duration: resp.Duration,
	}, nil
}

const visionPrompt = `Analyze this executive's presence in these video frames. Provide scores (0-100) for:

1. **Posture**: Percentage of frames with upright, open posture
2. **Eye Contact**: Estimated ratio looking at camera (0.0-1.0)
3. **Facial Expressions**: Breakdown of neutral/positive/negative (%)
4. **Gesture Rate**: Average gestures per minute
5. **First Impression**: Score for first 7-10 seconds

Provide response as JSON:
{
  "posture_score": float,
  "eye_contact_ratio": float,
  "facial_expressions": {"neutral": float, "positive": float, "negative": float},
  "gesture_rate": float,
  "first_impression_score": float,
  "notes": "Brief observation"
}`

// AnalyzeFrames sends a subsample of frames to gpt-4o and parses the
// structured assessment. Failures degrade to neutral defaults.
func (c *OpenAIClient) AnalyzeFrames(ctx context.Context, frames [][]byte) (models.PresenceMetrics, error) {
	sampled := sampleFrames(frames, 10)

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
	}
	for _, frame := range sampled {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(frame),
			},
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		MaxTokens: 500,
	})
	if err != nil {
		return models.PresenceMetrics{}, fmt.Errorf("vision analysis failed: %w", err)
	}

	var result struct {
		PostureScore         float64            `json:"posture_score"`
		EyeContactRatio      float64            `json:"eye_contact_ratio"`
		FacialExpressions    map[string]float64 `json:"facial_expressions"`
		GestureRate          float64            `json:"gesture_rate"`
		FirstImpressionScore float64            `json:"first_impression_score"`
	}
	if err := decodeJSONObject(resp.Choices[0].Message.Content, &result); err != nil {
		return defaultPresence(), nil
	}

	return models.PresenceMetrics{
		PostureScore:         result.PostureScore,
		EyeContactRatio:      result.EyeContactRatio,
		FacialExpressions:    result.FacialExpressions,
		GestureRate:          result.GestureRate,
		FirstImpressionScore: result.FirstImpressionScore,
	}, nil
}

// AnalyzeGravitas scores the transcript on five leadership dimensions,
// calibrated to the speaker's role when a profile exists.
func (c *OpenAIClient) AnalyzeGravitas(ctx context.Context, transcript string, profile *models.Profile) (models.GravitasMetrics, error) {
	prompt := fmt.Sprintf(`Analyze this executive's transcript for GRAVITAS indicators. Score each dimension 0-100:%s

**Transcript:**
%s

**Gravitas Dimensions:**
1. **Commanding Presence**: Directness, confident language, reduced hedging
2. **Decisiveness**: Clear decisions, reasoning with 'because/therefore', closure statements
3. **Poise Under Pressure**: Calm framing, problem decomposition when discussing challenges
4. **Emotional Intelligence**: Empathy markers, stakeholder framing, ownership, respectful language
5. **Vision Articulation**: Clear why/what/how, outcomes, strategic alignment

Provide JSON response:
{
  "commanding_presence": float,
  "decisiveness": float,
  "poise_under_pressure": float,
  "emotional_intelligence": float,
  "vision_articulation": float,
  "overall_gravitas": float,
  "key_observations": ["point 1", "point 2"]
}`, gravitasProfileContext(profile), transcript)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 600,
	})
	if err != nil {
		return defaultGravitas(), nil
	}

	var result models.GravitasMetrics
	if err := decodeJSONObject(resp.Choices[0].Message.Content, &result); err != nil {
		return defaultGravitas(), nil
	}

	return result, nil
}

// AnalyzeStorytelling detects narrative structure in the transcript. A
// missing story is a valid outcome, not an error.
func (c *OpenAIClient) AnalyzeStorytelling(ctx context.Context, transcript string, profile *models.Profile) (models.StorytellingMetrics, error) {
	profileContext := ""
	if profile != nil {
		profileContext = fmt.Sprintf("\n\n**Speaker Profile:** %s (%s level). Evaluate storytelling effectiveness appropriate for this leadership level.\n",
			profile.Role, profile.SeniorityLevel)
	}

	prompt := fmt.Sprintf(`Analyze this transcript for STORYTELLING quality:%s

**Transcript:**
%s

**Analysis:**
1. Does it contain a story with setup → conflict → resolution?
2. If YES, score these (0-100):
   - Narrative Structure: Clear beginning/middle/end
   - Authenticity: First-person lessons, reflections, responsibility
   - Concreteness: Specific details and examples
   - Pacing: Story portion as %% of total
3. If NO story detected, return has_story: false

JSON response:
{
  "has_story": bool,
  "narrative_structure": float or null,
  "authenticity": float or null,
  "concreteness": float or null,
  "pacing": float or null,
  "story_excerpt": "brief excerpt" or null,
  "observations": ["point 1", "point 2"]
}`, profileContext, transcript)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 500,
	})
	if err != nil {
		return models.StorytellingMetrics{HasStory: false}, nil
	}

	var result models.StorytellingMetrics
	if err := decodeJSONObject(resp.Choices[0].Message.Content, &result); err != nil {
		return models.StorytellingMetrics{HasStory: false}, nil
	}

	return result, nil
}

// CoachingTips asks for 5-7 actionable tips grounded in the metrics,
// falling back to fixed defaults when the model response is unusable.
func (c *OpenAIClient) CoachingTips(ctx context.Context, metrics models.DetailedMetrics, scores models.Scores) ([]string, error) {
	summary, err := json.MarshalIndent(map[string]interface{}{
		"communication": metrics.Communication,
		"presence":      metrics.Presence,
		"gravitas":      metrics.Gravitas,
		"storytelling":  metrics.Storytelling,
		"scores":        scores,
	}, "", "  ")
	if err != nil {
		return defaultTips(), nil
	}

	prompt := fmt.Sprintf(`Based on these EP metrics, provide 5-7 actionable coaching tips:

**Metrics Summary:**
%s

Generate coaching tips that are:
- Specific and actionable
- Supportive and constructive
- Mapped to weak areas
- Include 1-2 positive reinforcements

Return JSON array: ["tip 1", "tip 2", ...]`, summary)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 400,
	})
	if err != nil {
		return defaultTips(), nil
	}

	content := resp.Choices[0].Message.Content
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end <= start {
		return defaultTips(), nil
	}

	var tips []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &tips); err != nil {
		return defaultTips(), nil
	}
	if len(tips) > 7 {
		tips = tips[:7]
	}

	return tips, nil
}

func gravitasProfileContext(profile *models.Profile) string {
	if profile == nil {
		return ""
	}

	years := 5
	if profile.YearsExperience != nil {
		years = *profile.YearsExperience
	}
	industry := "Technology"
	if profile.Industry != nil {
		industry = *profile.Industry
	}

	return fmt.Sprintf("\n\n**Speaker Profile:**\n- Role: %s\n- Seniority: %s\n- Experience: %d years\n- Industry: %s\n\nIMPORTANT: Evaluate this speaker against the standards expected for their specific role and seniority level. A %s at %s level should demonstrate authority, strategic thinking, and leadership appropriate to this position.\n",
		profile.Role, profile.SeniorityLevel, years, industry, profile.Role, profile.SeniorityLevel)
}

// decodeJSONObject extracts the JSON object between the first '{' and
// the last '}' of a model response, tolerating surrounding prose.
func decodeJSONObject(content string, v interface{}) error {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object in response")
	}
	return json.Unmarshal([]byte(content[start:end+1]), v)
}

// sampleFrames picks up to n frames spread evenly across the clip
func sampleFrames(frames [][]byte, n int) [][]byte {
	if len(frames) <= n {
		return frames
	}

	step := len(frames) / n
	sampled := make([][]byte, 0, n)
	for i := 0; i < len(frames) && len(sampled) < n; i += step {
		sampled = append(sampled, frames[i])
	}
	return sampled
}

func defaultPresence() models.PresenceMetrics {
	return models.PresenceMetrics{
		PostureScore:    70,
		EyeContactRatio: 0.6,
		FacialExpressions: map[string]float64{
			"neutral": 50, "positive": 40, "negative": 10,
		},
		GestureRate:          5,
		FirstImpressionScore: 70,
	}
}

func defaultGravitas() models.GravitasMetrics {
	return models.GravitasMetrics{
		CommandingPresence:    60,
		Decisiveness:          60,
		PoiseUnderPressure:    60,
		EmotionalIntelligence: 60,
		VisionArticulation:    60,
		OverallGravitas:       60,
		KeyObservations:       []string{"Analysis unavailable"},
	}
}

func defaultTips() []string {
	return []string{
		"Practice strategic pauses before key points",
		"Reduce filler words with deliberate pacing",
		"Maintain eye contact with the camera lens",
		"Use concrete examples to support your points",
		"Frame challenges as opportunities for growth",
	}
}
