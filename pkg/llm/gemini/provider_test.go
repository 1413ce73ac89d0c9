package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-agenthub-be/pkg/llm"
)

func newTestProvider(handler http.HandlerFunc) (*GeminiProvider, *httptest.Server) {
	server := httptest.NewServer(handler)
	provider := NewGeminiProvider("test-key", "gemini-1.5-flash")
	provider.BaseURL = server.URL
	return provider, server
}

func TestChat_MapsRolesAndAppendsLiveMessage(t *testing.T) {
	var captured geminiRequest
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: &geminiContent{Parts: []geminiPart{{Text: "hello back"}}, Role: "model"}},
			},
		})
	})
	defer server.Close()

	history := []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}

	reply, err := provider.Chat(context.Background(), history, "how are you?")
	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)

	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "how are you?", captured.Contents[2].Parts[0].Text)
}

func TestChat_SendsGenerationConfig(t *testing.T) {
	var captured geminiRequest
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: &geminiContent{Parts: []geminiPart{{Text: "ok"}}}},
			},
		})
	})
	defer server.Close()

	_, err := provider.Chat(context.Background(), nil, "hi",
		llm.WithTemperature(0.7),
		llm.WithTopP(0.95),
		llm.WithTopK(40),
		llm.WithMaxOutputTokens(1024),
	)
	require.NoError(t, err)

	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, 0.7, captured.GenerationConfig.Temperature)
	assert.Equal(t, 0.95, captured.GenerationConfig.TopP)
	assert.Equal(t, 40, captured.GenerationConfig.TopK)
	assert.Equal(t, 1024, captured.GenerationConfig.MaxOutputTokens)
}

func TestChat_StatusError(t *testing.T) {
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"overloaded"}`))
	})
	defer server.Close()

	_, err := provider.Chat(context.Background(), nil, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestChat_EmptyCandidates(t *testing.T) {
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	})
	defer server.Close()

	_, err := provider.Chat(context.Background(), nil, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
