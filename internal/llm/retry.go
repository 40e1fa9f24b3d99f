package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how long a single completion may take, retries included.
type RetryPolicy struct {
	MaxRetries  uint64
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	CallTimeout time.Duration
}

type retryingClient struct {
	next   LLMClient
	policy RetryPolicy
}

// WithRetry retries failed completions with capped exponential backoff.
// Each attempt runs under CallTimeout. Cancellation of the caller's context
// and ErrEmptyResponse are never retried.
func WithRetry(next LLMClient, policy RetryPolicy) LLMClient {
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = 500 * time.Millisecond
	}
	return &retryingClient{next: next, policy: policy}
}

func (c *retryingClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	backoff := retry.NewExponential(c.policy.BaseDelay)
	if c.policy.MaxDelay > 0 {
		backoff = retry.WithCappedDuration(c.policy.MaxDelay, backoff)
	}
	backoff = retry.WithMaxRetries(c.policy.MaxRetries, backoff)

	var out string
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		resp, err := c.attempt(ctx, system, prompt)
		if err == nil {
			out = resp
			return nil
		}
		if ctx.Err() != nil || errors.Is(err, ErrEmptyResponse) {
			return err
		}
		if attempt <= int(c.policy.MaxRetries) {
			log.Printf("Warning: completion attempt %d failed, retrying: %v", attempt, err)
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *retryingClient) attempt(ctx context.Context, system, prompt string) (string, error) {
	if c.policy.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.policy.CallTimeout)
		defer cancel()
	}
	return c.next.Generate(ctx, system, prompt)
}
