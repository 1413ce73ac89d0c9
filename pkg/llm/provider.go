package llm

import (
	"context"
)

// Message represents one prior chat turn in a provider-agnostic format.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Option allows for optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	Model           string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithTopK(topK int) Option {
	return func(o *Options) {
		o.TopK = topK
	}
}

func WithMaxOutputTokens(n int) Option {
	return func(o *Options) {
		o.MaxOutputTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any text-generation backend.
type LLMProvider interface {
	// Chat sends the prior conversation plus the live message to the model
	// and returns the reply text. History must be chronological.
	Chat(ctx context.Context, history []Message, message string, opts ...Option) (string, error)
}
