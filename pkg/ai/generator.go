package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

// ErrModelUnavailable means the service answered but the configured model
// is not installed or not known to it.
var ErrModelUnavailable = errors.New("model unavailable")

// Generator is a text-in, text-out language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewGenerator builds the client selected by cfg.Provider.
func NewGenerator(cfg *config.LLMConfig) (Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm config is required")
	}
	switch cfg.Provider {
	case "ollama", "":
		return NewOllamaClient(cfg), nil
	case "groq":
		return NewGroqClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
