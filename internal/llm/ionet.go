package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slidegen/internal/logging"
	"slidegen/internal/metrics"

	"github.com/sony/gobreaker"
)

const (
	DefaultIONetBaseURL  = "https://api.intelligence.io.solutions/api/v1"
	DefaultIONetModel    = "meta-llama/Llama-3.3-70B-Instruct"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultMaxTokens     = 800
	DefaultTimeout       = 30 * time.Second
)

// BreakerSettings configures the circuit breaker around the HTTP transport.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after 60% failures over at least 5 requests.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.6,
	}
}

// IONetConfig holds configuration for an OpenAI-compatible client.
type IONetConfig struct {
	Provider  Provider
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	Breaker   BreakerSettings
	Metrics   *metrics.Recorder
}

// DefaultIONetConfig returns io.net defaults.
func DefaultIONetConfig(apiKey string) IONetConfig {
	return IONetConfig{
		Provider:  ProviderIONet,
		APIKey:    apiKey,
		BaseURL:   DefaultIONetBaseURL,
		Model:     DefaultIONetModel,
		MaxTokens: DefaultMaxTokens,
		Timeout:   DefaultTimeout,
		Breaker:   DefaultBreakerSettings(),
	}
}

// IONetClient implements Client for io.net and any other
// OpenAI-compatible /chat/completions endpoint.
type IONetClient struct {
	provider   Provider
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Recorder
}

// NewIONetClient creates a client from config.
func NewIONetClient(cfg IONetConfig) *IONetClient {
	if cfg.Provider == "" {
		cfg.Provider = ProviderIONet
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultIONetBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultIONetModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	bs := cfg.Breaker
	if bs.MinRequests == 0 {
		bs = DefaultBreakerSettings()
	}

	c := &IONetClient{
		provider:   cfg.Provider,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		metrics:    cfg.Metrics,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(cfg.Provider),
		MaxRequests: bs.MaxRequests,
		Interval:    bs.Interval,
		Timeout:     bs.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bs.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bs.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logging.LLMWarn("circuit breaker %q changed from %v to %v", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			// Caller-side problems say nothing about endpoint health.
			return err == nil ||
				errors.Is(err, ErrInvalidAPIKey) ||
				errors.Is(err, ErrModelNotSupported) ||
				errors.Is(err, context.Canceled)
		},
	})
	return c
}

// Model returns the configured model.
func (c *IONetClient) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
	Stream              bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type badRequestBody struct {
	Detail          string   `json:"detail"`
	SupportedModels []string `json:"Supported models"`
}

// Complete sends the prompt as a single user message.
func (c *IONetClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	start := time.Now()
	logging.LLMDebug("[%s] Complete: model=%s prompt_len=%d temperature=%.1f", c.provider, c.model, len(req.Prompt), req.Temperature)

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, req)
	})
	c.metrics.ObserveLLM(string(c.provider), time.Since(start), err)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.LLMWarn("[%s] Complete: rejected by circuit breaker: %v", c.provider, err)
			return "", fmt.Errorf("%s unavailable: %w", c.provider, err)
		}
		logging.LLMError("[%s] Complete: failed after %v: %v", c.provider, time.Since(start), err)
		return "", err
	}

	text := out.(string)
	logging.LLMDebug("[%s] Complete: completed in %v response_len=%d", c.provider, time.Since(start), len(text))
	return text, nil
}

func (c *IONetClient) do(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	body := chatRequest{
		Model:               c.model,
		Messages:            []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature:         req.Temperature,
		MaxCompletionTokens: maxTokens,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("%w (401): %s", ErrInvalidAPIKey, truncate(string(respBody), 200))
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		var br badRequestBody
		if json.Unmarshal(respBody, &br) == nil && strings.Contains(br.Detail, "does not support Chat Completions API") {
			if len(br.SupportedModels) > 5 {
				br.SupportedModels = br.SupportedModels[:5]
			}
			return "", fmt.Errorf("%w: %s (supported: %s)", ErrModelNotSupported, c.model, strings.Join(br.SupportedModels, ", "))
		}
		return "", fmt.Errorf("API error 400: %s", truncate(string(respBody), 200))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
