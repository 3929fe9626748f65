package content

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/epquotient/epq/pkg/models"
)

// ModuleContent is a generated micro-training lesson for one module.
type ModuleContent struct {
	ModuleID    string    `json:"module_id"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Generator produces module lesson text, optionally tailored to a profile.
type Generator interface {
	GenerateModule(ctx context.Context, moduleID string, profile *models.Profile) (*ModuleContent, error)
}

var moduleTopics = map[string]string{
	"strategic-pauses":       "strategic pause techniques for executives",
	"lens-eye-contact":       "camera eye contact and lens presence",
	"decision-framing":       "executive decision communication framework",
	"vocal-variety":          "vocal modulation and variety techniques",
	"storytelling-structure": "leadership storytelling structure",
	"commanding-openings":    "commanding opening statements for executives",
}

// OpenAIGenerator generates module lessons with a chat completion model.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(client *openai.Client) *OpenAIGenerator {
	return &OpenAIGenerator{client: client, model: openai.GPT4o}
}

func (g *OpenAIGenerator) GenerateModule(ctx context.Context, moduleID string, profile *models.Profile) (*ModuleContent, error) {
	topic, ok := moduleTopics[moduleID]
	if !ok {
		topic = "executive presence"
	}

	roleContext := "executive"
	if profile != nil {
		roleContext = fmt.Sprintf("%s at %s level", profile.Role, profile.SeniorityLevel)
	}

	prompt := fmt.Sprintf(`Create a micro-training module on %s for a %s.

Structure (keep concise):
1. **Key Concept** (2-3 sentences)
2. **Why It Matters** (2 sentences)
3. **3 Practical Techniques** (each 1-2 sentences)
4. **Practice Prompt** (specific scenario to practice)

Keep it actionable and professional. Total: ~200 words.`, topic, roleContext)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxTokens: 400,
	})
	if err != nil {
		return nil, fmt.Errorf("generating module content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generating module content: empty completion")
	}

	return &ModuleContent{
		ModuleID:    moduleID,
		Content:     resp.Choices[0].Message.Content,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// StaticGenerator serves canned lesson text. Used when no model is configured.
type StaticGenerator struct{}

func (StaticGenerator) GenerateModule(_ context.Context, moduleID string, _ *models.Profile) (*ModuleContent, error) {
	topic, ok := moduleTopics[moduleID]
	if !ok {
		topic = "executive presence"
	}
	text := fmt.Sprintf(`**Key Concept**
This module covers %s. Deliberate practice of a single technique at a time builds lasting habits faster than broad rehearsal.

**Why It Matters**
Audiences form judgments about credibility within seconds. Small, repeatable delivery habits compound into perceived authority.

**3 Practical Techniques**
1. Record a 60-second take and review it before reading any feedback.
2. Pick one behavior to change and repeat the same take three times.
3. Close each session by noting the single clearest improvement.

**Practice Prompt**
Record a two-minute update to your leadership team applying today's focus area, then run it through an analysis to measure the change.`, topic)

	return &ModuleContent{
		ModuleID:    moduleID,
		Content:     text,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
