package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Attribution headers OpenRouter shows on its app leaderboard.
	openRouterReferer = "https://github.com/abhisek/hotsquiz"
	openRouterTitle   = "hotsquiz"
)

// OpenRouterProvider reaches any model OpenRouter hosts through its
// OpenAI-compatible API. Model IDs are vendor-prefixed and used as given,
// e.g. "google/gemini-2.5-flash".
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL
	if oc.BaseURL == "" {
		oc.BaseURL = defaultOpenRouterBaseURL
	}
	next := oc.HTTPClient
	if next == nil {
		next = http.DefaultClient
	}
	oc.HTTPClient = headerDoer{next: next, header: http.Header{
		"Http-Referer": {openRouterReferer},
		"X-Title":      {openRouterTitle},
	}}

	return &OpenRouterProvider{OpenAIProvider: newChatProvider("openrouter", oc, cfg.Model)}, nil
}
