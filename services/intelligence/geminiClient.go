// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const ingredientPrompt = `List every distinct food ingredient visible in this image.
Respond with a JSON array of lowercase ingredient names only, for example:
["tomato", "basil", "mozzarella"]. No other text.`

// GeminiClient wraps the Gemini vision model for ingredient recognition.
type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiClient{model: model}
}

// DetectIngredients sends the image to Gemini and parses the response into
// ingredient names.
func (g *GeminiClient) DetectIngredients(ctx context.Context, imageData []byte, format string) ([]string, error) {
	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData(format, imageData),
		genai.Text(ingredientPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	text, err := candidateText(resp)
	if err != nil {
		return nil, err
	}
	return parseIngredients(text), nil
}

// candidateText concatenates the text parts of the first candidate.
// Safety filters can return a response with no candidates or an empty
// content block.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no content")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// parseIngredients accepts either the requested JSON array or, when the
// model ignores instructions, a newline/comma separated list.
func parseIngredients(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err == nil {
		return cleanIngredients(names)
	}

	split := func(r rune) bool { return r == '\n' || r == ',' }
	return cleanIngredients(strings.FieldsFunc(text, split))
}

func cleanIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool)
	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(strings.Trim(name, "-*• ")))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
