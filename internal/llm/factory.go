package llm

import (
	"context"
	"fmt"
	"strings"

	"slidegen/internal/config"
	"slidegen/internal/logging"
	"slidegen/internal/metrics"
)

// NewClientFromConfig builds the client for the configured provider.
func NewClientFromConfig(ctx context.Context, cfg *config.Config, rec *metrics.Recorder) (Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	breaker := BreakerSettings{
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.GetBreakerInterval(),
		Timeout:          cfg.GetBreakerTimeout(),
		MinRequests:      cfg.Breaker.MinRequests,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}

	provider := Provider(strings.ToLower(cfg.LLM.Provider))
	logging.Boot("LLM provider: %s model=%s", provider, cfg.LLM.Model)

	switch provider {
	case ProviderIONet:
		return NewIONetClient(IONetConfig{
			Provider:  ProviderIONet,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.GetLLMTimeout(),
			Breaker:   breaker,
			Metrics:   rec,
		}), nil

	case ProviderOpenAI:
		baseURL, model := cfg.LLM.BaseURL, cfg.LLM.Model
		// The shipped defaults point at io.net; swap them for OpenAI's own.
		if baseURL == "" || baseURL == DefaultIONetBaseURL {
			baseURL = DefaultOpenAIBaseURL
		}
		if model == "" || model == DefaultIONetModel {
			model = DefaultOpenAIModel
		}
		return NewIONetClient(IONetConfig{
			Provider:  ProviderOpenAI,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   baseURL,
			Model:     model,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.GetLLMTimeout(),
			Breaker:   breaker,
			Metrics:   rec,
		}), nil

	case ProviderGemini:
		model := cfg.LLM.Model
		if model == DefaultIONetModel {
			model = DefaultGeminiModel
		}
		return NewGeminiClient(ctx, cfg.LLM.APIKey, model, cfg.LLM.MaxTokens, rec)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}
