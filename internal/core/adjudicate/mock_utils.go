package adjudicate

import (
	"context"
	"sync"
)

type MockLLMClient struct {
	Response string
	Err      error

	mu      sync.Mutex
	System  []string
	Prompts []string
}

func (m *MockLLMClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.mu.Lock()
	m.System = append(m.System, system)
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
