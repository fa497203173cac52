// Package gemini adapts the Gemini API into the pipeline's question
// generator: one call per text chunk, structured JSON output validated
// against the quiz schema before it is returned.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pdfquiz/internal/config"
	"pdfquiz/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// promptTemplate embeds the target question count and the chunk text. The
// option labeling and 0-based index rules are instructions to the model; the
// structural contract is enforced by the response schema and parseUnit.
const promptTemplate = `Create a %d-question multiple choice quiz from this text. Include:
- A descriptive title
- %d questions with 4 options in array (no labels like A, B, etc.)
- Index of correct answer (0-based)
- Brief explanation for each answer
- Remove duplicate questions

Text:
%s`

// unitSchema mirrors the QuizUnit shape so the model emits machine-parseable
// JSON regardless of sampling variance.
var unitSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title": {Type: genai.TypeString},
		"questions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question": {Type: genai.TypeString},
					"options": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
					"correctAnswer": {Type: genai.TypeInteger},
					"explanation":   {Type: genai.TypeString},
				},
				Required: []string{"question", "options", "correctAnswer", "explanation"},
			},
		},
	},
	Required: []string{"title", "questions"},
}

// Client wraps the Gemini client configured for quiz generation.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a Gemini client. Temperature defaults to 0.7 via config,
// trading phrasing variety against structural reliability.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = unitSchema
	model.SetTemperature(cfg.Temperature)

	return &Client{client: client, model: model}, nil
}

// Close closes the Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// Generate produces one schema-valid quiz unit from a text chunk. The call is
// atomic per chunk and never retried here; retry policy belongs to callers.
func (c *Client) Generate(ctx context.Context, chunkText string, targetCount int) (*models.QuizUnit, error) {
	prompt := buildPrompt(chunkText, targetCount)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	var jsonText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			jsonText.WriteString(string(text))
		}
	}

	return parseUnit(jsonText.String(), targetCount)
}

func buildPrompt(chunkText string, targetCount int) string {
	return fmt.Sprintf(promptTemplate, targetCount, targetCount, chunkText)
}

// parseUnit decodes a generation response and validates it against the quiz
// schema. Any mismatch is unrecoverable for the chunk.
func parseUnit(raw string, targetCount int) (*models.QuizUnit, error) {
	raw = stripCodeFence(raw)

	var unit models.QuizUnit
	if err := json.Unmarshal([]byte(raw), &unit); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := unit.Validate(targetCount); err != nil {
		return nil, fmt.Errorf("response failed schema validation: %w", err)
	}
	return &unit, nil
}

// stripCodeFence removes a markdown fence some models wrap around JSON even
// when a JSON MIME type is requested.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
