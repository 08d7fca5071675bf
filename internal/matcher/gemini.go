package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiMatcher implements TextMatcher with the Gemini API.
type GeminiMatcher struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGeminiMatcher creates a Gemini-backed TextMatcher.
func NewGeminiMatcher(ctx context.Context, apiKey, model string, logger zerolog.Logger) (*GeminiMatcher, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger = logger.With().Str("component", "gemini-matcher").Logger()
	logger.Info().Str("model", model).Msg("gemini matcher initialised")

	return &GeminiMatcher{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Match asks the model for the catalogue products in listText, constrained to
// the products/productId JSON schema.
func (g *GeminiMatcher) Match(ctx context.Context, listText string, reducedCatalog []byte) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(BuildPrompt(listText, reducedCatalog)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   ResponseSchema(),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}

	g.logger.Debug().Int("response_bytes", len(text)).Msg("gemini response received")
	return text, nil
}

// ResponseSchema describes {"products": [{"productId": number}]}.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"products": {
				Type:        genai.TypeArray,
				Description: "Products from the catalogue that match the shopping list.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"productId": {
							Type:        genai.TypeNumber,
							Description: "The ID of the matched catalogue product.",
						},
					},
					Required: []string{"productId"},
				},
			},
		},
	}
}
