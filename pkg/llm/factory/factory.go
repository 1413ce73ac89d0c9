package factory

import (
	"fmt"

	"ai-agenthub-be/pkg/llm"
	"ai-agenthub-be/pkg/llm/gemini"
	"ai-agenthub-be/pkg/llm/ollama"
)

type Config struct {
	Provider string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	OllamaBaseURL string
	OllamaModel   string
}

// NewProvider builds the configured provider. Gemini is the default.
// Each provider reads only its own config fields, so an Ollama base URL
// in the environment never redirects Gemini traffic.
func NewProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		provider := gemini.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
		if cfg.GeminiBaseURL != "" {
			provider.BaseURL = cfg.GeminiBaseURL
		}
		return provider, nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
