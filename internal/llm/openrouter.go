package llm

import (
	"net/http"
)

const (
	OpenRouterBaseURL      = "https://openrouter.ai/api/v1"
	OpenRouterDefaultModel = "openai/gpt-4o-mini"
)

// headerTransport stamps fixed headers on every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// NewOpenRouterClient talks to OpenRouter through its OpenAI-compatible API.
// siteURL and siteName are sent as the attribution headers OpenRouter expects.
func NewOpenRouterClient(apiKey, model, baseURL, siteURL, siteName string) *OpenAIClient {
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}
	if model == "" {
		model = OpenRouterDefaultModel
	}
	httpClient := &http.Client{
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": siteURL,
				"X-Title":      siteName,
			},
		},
	}
	return newOpenAIClient(apiKey, model, baseURL, httpClient)
}
