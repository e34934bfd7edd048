package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini talks to the Gemini API through the Google GenAI SDK.
type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, modelName: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}

	out := Clean(b.String())
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
