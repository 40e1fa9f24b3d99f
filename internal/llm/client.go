package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// LLMClient turns a system instruction and a user prompt into a free-text completion.
type LLMClient interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ClientFunc adapts a plain function to LLMClient.
type ClientFunc func(ctx context.Context, system, prompt string) (string, error)

func (f ClientFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}
