package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/harvard-cv/internal/config"
)

// ErrMissingAPIKey is returned at call time when the configured provider has
// no API key. The server still starts without one.
var ErrMissingAPIKey = errors.New("model provider API key not set")

// LLMServiceInterface turns a prompt into the model's raw text reply.
type LLMServiceInterface interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// NewLLMService builds the provider selected by LLM_PROVIDER.
func NewLLMService(ctx context.Context) (LLMServiceInterface, error) {
	switch provider := config.LoadLLMConfig().Provider; provider {
	case config.LLMProviderGemini:
		return NewGeminiService(ctx, config.LoadGeminiConfig())
	case config.LLMProviderOpenRouter:
		return NewOpenRouterService(config.LoadOpenRouterConfig()), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
}
