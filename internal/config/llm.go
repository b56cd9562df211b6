package config

import (
	"strings"
	"sync"
	"time"
)

const (
	LLMProviderGemini     = "gemini"
	LLMProviderOpenRouter = "openrouter"
)

type LLMConfig struct {
	Provider string
	Timeout  time.Duration
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			Provider: strings.ToLower(getEnvString("LLM_PROVIDER", LLMProviderGemini)),
			Timeout:  getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		}
	})
	return llmConfig
}
