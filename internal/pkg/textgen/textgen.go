// Package textgen is the prompt-in, text-out boundary to hosted language
// models.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/config"
)

var (
	ErrDisabled    = errors.New("text generation is not configured")
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	ErrEmptyOutput = errors.New("model returned empty response")
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a plain function to Generator.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Disabled fails every call with ErrDisabled.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrDisabled
}

// New builds the generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "":
		return Disabled{}, nil
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case "googleai":
		return NewGoogleAI(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// Clean trims whitespace and a surrounding markdown code fence.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
