package llm

import (
	"context"
	"fmt"
	"time"

	"studyplanner/internal/config"
	"studyplanner/internal/logging"
)

// NewClientFromConfig creates a provider client from the llm section of the config.
func NewClientFromConfig(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key found; set llm.api_key or one of GEMINI_API_KEY, GOOGLE_API_KEY, OPENAI_API_KEY: %w", ErrNoAPIKey)
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 120 * time.Second
	}

	logging.APIDebug("creating %s client: model=%q base_url=%q timeout=%s", cfg.Provider, cfg.Model, cfg.BaseURL, timeout)

	switch Provider(cfg.Provider) {
	case ProviderGemini, "":
		client, err := NewGeminiClientWithConfig(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Timeout:     timeout,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}
		logging.API("gemini client ready: %s", client.Name())
		return client, nil

	case ProviderOpenAI:
		return NewOpenAIClientWithConfig(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Timeout:     timeout,
			Temperature: cfg.Temperature,
		}), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
