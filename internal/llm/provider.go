package llm

import (
	"context"
	"encoding/json"
)

// Provider is the boundary to a hosted text-generation service.
// Hotsquiz sends a single prompt and reads back whatever text the model
// produced; all interpretation of that text happens downstream.
type Provider interface {
	// Generate sends the request and returns the model text untouched.
	// A reply with no text is an *ErrInvalidResponse; a truncated one is
	// an *ErrMaxTokensExceeded carrying the partial text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history. Quiz generation sends exactly
	// one user message.
	Messages []Message

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model output.
type Response struct {
	// Content is the generated text exactly as the provider returned it.
	// It is usually not valid JSON on its own.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is one of the Stop* constants.
	StopReason string
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
