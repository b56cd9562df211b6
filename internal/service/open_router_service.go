package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/harvard-cv/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const extractionSystemPrompt = "You extract structured data from LinkedIn resumes and answer with a single JSON object."

type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: client,
	}
}

func (s *OpenRouterService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if s.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":           s.Model,
			"temperature":     0.1,
			"response_format": map[string]string{"type": "json_object"},
			"messages": []map[string]string{
				{"role": "system", "content": extractionSystemPrompt},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter http %d: %s", resp.StatusCode(), gjson.Get(resp.String(), "error.message").String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
