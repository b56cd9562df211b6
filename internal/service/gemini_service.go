package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/harvard-cv/internal/config"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client  *genai.Client
	Model   string
	breaker *circuitBreaker
	initErr error
}

// NewGeminiService fails only on client construction errors. A missing key
// yields a service whose calls return ErrMissingAPIKey.
func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	s := &GeminiService{
		Model:   cfg.Model,
		breaker: newCircuitBreaker(defaultBreakerMax, defaultBreakerCooldown),
	}
	if cfg.APIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set, extraction requests will fail")
		s.initErr = ErrMissingAPIKey
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	s.Client = client
	return s, nil
}

// GenerateJSON makes exactly one call. The caller owns the deadline.
func (s *GeminiService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if s.initErr != nil {
		return "", s.initErr
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := s.breaker.allow(); err != nil {
		return "", err
	}

	result, err := s.Client.Models.GenerateContent(
		ctx,
		s.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		// A cancelled or expired caller context says nothing about upstream.
		if ctx.Err() != nil {
			s.breaker.release()
		} else {
			s.breaker.failure()
		}
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	s.breaker.success()

	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}
	return result.Text(), nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.breaker.reset()
	log.Println("Circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	return s.breaker.status()
}
