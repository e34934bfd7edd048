package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultGoogleAIModel = "gemini-2.5-flash"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// LangChain runs prompts through any langchaingo model.
type LangChain struct {
	model llms.Model
	name  string
}

func NewLangChain(model llms.Model, name string) *LangChain {
	return &LangChain{model: model, name: name}
}

func NewGoogleAI(ctx context.Context, apiKey, model string) (*LangChain, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("googleai api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGoogleAIModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create googleai client: %w", err)
	}
	return NewLangChain(llm, model), nil
}

func NewOpenAI(apiKey, model string) (*LangChain, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIModel
	}
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewLangChain(llm, model), nil
}

func (l *LangChain) Generate(ctx context.Context, prompt string) (string, error) {
	if l == nil || l.model == nil {
		return "", errors.New("langchain generator is not initialized")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	out := Clean(resp)
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

func (l *LangChain) Model() string {
	if l == nil {
		return ""
	}
	return l.name
}
