package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/abhisek/hotsquiz/internal/store"
)

// Named is implemented by providers that know which vendor they talk to.
type Named interface {
	Name() string
}

func providerName(p Provider) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return "unknown"
}

// LoggingProvider records every exchange with the model in the event
// store, so a bad quiz can be traced back to the exact reply.
type LoggingProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	log    *logger.Logger
}

// WithLogging wraps p. Either sink may be nil.
func WithLogging(p Provider, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, vendor: providerName(p), events: events, log: log}
}

func (l *LoggingProvider) Name() string { return l.vendor }

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, time.Since(start))

	if err != nil {
		l.log.Warn("llm request failed", "provider", ev.Provider, "purpose", ev.Purpose,
			"model", ev.Model, "latency_ms", ev.LatencyMs, "error", err)
	} else {
		l.log.Debug("llm request", "provider", ev.Provider, "purpose", ev.Purpose, "model", ev.Model,
			"latency_ms", ev.LatencyMs, "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens,
			"reply_bytes", len(ev.ResponseBody))
	}

	if l.events != nil {
		if werr := l.events.AppendLLMRequest(ctx, ev); werr != nil {
			l.log.Warn("failed to record LLM request event", "error", werr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err == nil {
		return ev
	}

	ev.ErrorMessage = err.Error()
	// Keep whatever text came back so failed generations can be inspected.
	var truncated *ErrMaxTokensExceeded
	var invalid *ErrInvalidResponse
	switch {
	case errors.As(err, &truncated):
		ev.ResponseBody = string(truncated.Content)
	case errors.As(err, &invalid):
		ev.ResponseBody = string(invalid.Content)
	}
	return ev
}

// transcript renders a request the way `hotsquiz llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.MaxTokens > 0 {
		fmt.Fprintf(&b, "[max_tokens=%d temperature=%.2f]\n", req.MaxTokens, req.Temperature)
	}
	return b.String()
}
