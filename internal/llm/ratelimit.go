package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type rateLimitedClient struct {
	next    LLMClient
	limiter *rate.Limiter
}

// WithRateLimit throttles completions to rps requests per second.
func WithRateLimit(next LLMClient, rps float64, burst int) LLMClient {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *rateLimitedClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return c.next.Generate(ctx, system, prompt)
}
