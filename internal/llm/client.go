// Package llm provides an optional Gemini-backed text enhancer for preview
// summaries. The scoring engine never depends on it; when no API key is
// configured the boundary falls back to the fixed deterministic overview.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used for overview generation.
const DefaultModel = "gemini-1.5-flash"

// Client generates short localized overview text for assessment previews.
type Client interface {
	// GenerateOverview produces a 2-3 sentence overview for the top career
	// match in the requested language ("en" or "hi").
	GenerateOverview(ctx context.Context, language, topCareer string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client. Returns nil without error when
// no API key is configured, leaving overview generation disabled.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, nil
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateOverview produces a short overview paragraph for the given career
func (c *GeminiClient) GenerateOverview(ctx context.Context, language, topCareer string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(buildOverviewPrompt(language, topCareer)))
	if err != nil {
		return "", fmt.Errorf("failed to generate overview: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// buildOverviewPrompt builds the overview prompt for the requested language.
func buildOverviewPrompt(language, topCareer string) string {
	lang := "English"
	if language == "hi" {
		lang = "Hindi"
	}
	return fmt.Sprintf(
		"Write 2-3 encouraging sentences in %s for a student whose top career "+
			"match is %q. Mention that the match is based on their interests, "+
			"skills, and personality. Plain text only, no markdown.",
		lang, topCareer,
	)
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.TrimSpace(strings.Join(parts, "")), nil
}
