package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-agenthub-be/pkg/llm/gemini"
	"ai-agenthub-be/pkg/llm/ollama"
)

func TestNewProvider_GeminiIgnoresOllamaBaseURL(t *testing.T) {
	// Default env carries an Ollama base URL even when Gemini is selected.
	provider, err := NewProvider(Config{
		Provider:      "gemini",
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-1.5-flash",
		OllamaBaseURL: "http://localhost:11434",
		OllamaModel:   "llama3.1",
	})
	assert.NoError(t, err)

	g, ok := provider.(*gemini.GeminiProvider)
	assert.True(t, ok)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", g.BaseURL)
	assert.Equal(t, "gemini-1.5-flash", g.ModelName)
}

func TestNewProvider_GeminiBaseURLOverride(t *testing.T) {
	provider, err := NewProvider(Config{
		GeminiAPIKey:  "test-key",
		GeminiBaseURL: "http://localhost:9999/v1beta",
	})
	assert.NoError(t, err)

	g, ok := provider.(*gemini.GeminiProvider)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:9999/v1beta", g.BaseURL)
}

func TestNewProvider_OllamaUsesOwnModelAndBaseURL(t *testing.T) {
	provider, err := NewProvider(Config{
		Provider:      "ollama",
		GeminiModel:   "gemini-1.5-flash",
		OllamaBaseURL: "http://ollama-host:11434",
		OllamaModel:   "llama3.1",
	})
	assert.NoError(t, err)

	o, ok := provider.(*ollama.OllamaProvider)
	assert.True(t, ok)
	assert.Equal(t, "http://ollama-host:11434", o.BaseURL)
	assert.Equal(t, "llama3.1", o.ModelName)
}

func TestNewProvider_GeminiRequiresAPIKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini"})
	assert.Error(t, err)
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bard"})
	assert.Error(t, err)
}
