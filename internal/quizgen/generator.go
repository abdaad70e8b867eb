package quizgen

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/abhisek/hotsquiz/internal/quiz"
)

// Purpose labels quiz generation requests in the event log.
const Purpose = "quiz-gen"

// Generator produces a quiz question set.
type Generator interface {
	// Generate returns exactly p.Count questions, or an error when the
	// service call or extraction fails. No partial set is returned.
	Generate(ctx context.Context, p Params) ([]quiz.Question, error)
}

// LLMGenerator implements Generator with an llm.Provider.
type LLMGenerator struct {
	provider   llm.Provider
	config     Config
	normalizer *Normalizer
	log        *logger.Logger
}

// New creates an LLMGenerator. log may be nil.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *LLMGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &LLMGenerator{
		provider:   provider,
		config:     cfg,
		normalizer: &Normalizer{Policy: cfg.Policy, Log: log},
		log:        log,
	}
}

// Generate builds the prompt, calls the provider and turns the reply into
// a question set.
func (g *LLMGenerator) Generate(ctx context.Context, p Params) ([]quiz.Question, error) {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz parameters: %w", err)
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(p)},
		},
		MaxTokens:   g.config.maxTokens(p.Count),
		Temperature: g.config.Temperature,
	}

	g.log.Info("generating quiz", "subject", p.Subject, "level", p.Level, "count", p.Count,
		"model", g.provider.ModelID())
	start := time.Now()

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		g.log.Error("quiz generation failed", "error", err)
		return nil, &GenerationError{Err: err}
	}

	qs, err := g.Ingest(resp.Text(), p.Count)
	if err != nil {
		g.logExtractionFailure(err)
		return nil, err
	}

	g.log.Info("quiz generated", "questions", len(qs), "elapsed_ms", time.Since(start).Milliseconds())
	return qs, nil
}

// Ingest runs extraction and normalization on raw model text.
func (g *LLMGenerator) Ingest(raw string, count int) ([]quiz.Question, error) {
	elems, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	return g.normalizer.BuildSet(elems, count), nil
}

func (g *LLMGenerator) logExtractionFailure(err error) {
	kv := []any{"error", err}
	if m, ok := asMalformed(err); ok {
		kv = append(kv, "offset", m.Offset, "snippet", m.Snippet)
	}
	g.log.Error("quiz extraction failed", kv...)
}
