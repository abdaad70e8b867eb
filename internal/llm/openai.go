package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider talks to the Chat Completions API. OpenRouterProvider
// reuses it against an OpenAI-compatible gateway.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return newChatProvider("openai", oc, resolveModel(cfg.Model, openaiModels)), nil
}

func newChatProvider(name string, oc openai.ClientConfig, model string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClientWithConfig(oc), model: model, name: name}
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            msgs,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	})
	if err != nil {
		return nil, openaiError(err)
	}
	return p.reply(resp).finish()
}

func (p *OpenAIProvider) reply(resp openai.ChatCompletionResponse) reply {
	r := reply{
		provider: p.name,
		model:    resp.Model,
		stop:     StopEnd,
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if r.model == "" {
		r.model = p.model
	}
	if len(resp.Choices) == 0 {
		return r
	}

	choice := resp.Choices[0]
	r.text = choice.Message.Content
	switch {
	case choice.FinishReason == openai.FinishReasonLength:
		r.stop = StopMaxTokens
	case choice.FinishReason == openai.FinishReasonContentFilter:
		r.stop, r.blocked = StopFiltered, "content filter"
	case choice.Message.Refusal != "":
		r.stop, r.blocked = StopFiltered, choice.Message.Refusal
	}
	return r
}

func openaiError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, nil, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

// headerDoer adds fixed headers to every request a go-openai client sends.
type headerDoer struct {
	next   openai.HTTPDoer
	header http.Header
}

func (d headerDoer) Do(req *http.Request) (*http.Response, error) {
	for k, vs := range d.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return d.next.Do(req)
}
