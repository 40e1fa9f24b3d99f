package core

import (
	"context"
	"sync"
)

// MockLLM answers through Respond and records every prompt it saw.
type MockLLM struct {
	Respond func(prompt string) (string, error)

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Respond(prompt)
}

func (m *MockLLM) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Prompts...)
}
