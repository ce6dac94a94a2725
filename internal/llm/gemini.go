package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slidegen/internal/logging"
	"slidegen/internal/metrics"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements Client using Google's GenAI SDK.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
	metrics   *metrics.Recorder
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int, rec *metrics.Recorder) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: model, maxTokens: maxTokens, metrics: rec}, nil
}

// Model returns the configured model.
func (c *GeminiClient) Model() string { return c.model }

// Complete sends the prompt as a single user turn.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		err = classifyGeminiError(err)
		c.metrics.ObserveLLM(string(ProviderGemini), time.Since(start), err)
		logging.LLMError("[gemini] Complete: %v", err)
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.metrics.ObserveLLM(string(ProviderGemini), time.Since(start), ErrEmptyResponse)
		return "", ErrEmptyResponse
	}
	c.metrics.ObserveLLM(string(ProviderGemini), time.Since(start), nil)
	logging.LLMDebug("[gemini] Complete: completed in %v response_len=%d", time.Since(start), len(text))
	return text, nil
}

func classifyGeminiError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY_INVALID"), strings.Contains(msg, "Error 401"), strings.Contains(msg, "Error 403"):
		return fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
	case strings.Contains(msg, "Error 429"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("GenAI generate failed: %w", err)
	}
}
