package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/doccheck/internal/config"
)

// NewClient builds the completion client named by cfg.Provider.
// An empty provider selects OpenRouter.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "openrouter":
		return NewOpenRouterClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.SiteURL, cfg.SiteName), nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		log.Printf("Initializing Ollama via OpenAI-compatible API at %s", baseURL)

		// Ollama ignores the key but the client insists on one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// Wrap applies the configured rate limit and retry policy around client.
// The limiter sits inside the retry loop so every attempt is throttled.
func Wrap(client LLMClient, cfg *config.Config) LLMClient {
	if cfg.RateLimit.RequestsPerSecond > 0 {
		client = WithRateLimit(client, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	return WithRetry(client, RetryPolicy{
		MaxRetries:  cfg.Retry.MaxRetries,
		BaseDelay:   cfg.Retry.BaseDelay(),
		MaxDelay:    cfg.Retry.MaxDelay(),
		CallTimeout: cfg.Retry.CallTimeout(),
	})
}
