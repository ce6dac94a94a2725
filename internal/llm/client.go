// Package llm talks to remote chat-completion APIs.
package llm

import (
	"context"
	"errors"
)

// Client completes a single prompt.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is one completion request. Zero MaxTokens uses the client default.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Provider names an LLM backend.
type Provider string

const (
	ProviderIONet  Provider = "ionet"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

var (
	// ErrInvalidAPIKey is returned when the provider rejects the credentials.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrRateLimited is returned on HTTP 429.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrModelNotSupported is returned when the model cannot serve chat completions.
	ErrModelNotSupported = errors.New("model does not support chat completions")

	// ErrEmptyResponse is returned when the provider answered without text.
	ErrEmptyResponse = errors.New("no completion returned")

	// ErrNoAPIKey is returned when a client is built without credentials.
	ErrNoAPIKey = errors.New("API key not configured")
)

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
