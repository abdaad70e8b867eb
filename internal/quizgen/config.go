package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// BaseTokens plus TokensPerQuestion times the count is the response
	// token budget.
	BaseTokens        int
	TokensPerQuestion int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Policy resolves invalid multiple-choice answers. Nil uses MarkerFallback.
	Policy AnswerFallbackPolicy
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		BaseTokens:        1024,
		TokensPerQuestion: 512,
		Temperature:       0.7,
	}
}

func (c Config) maxTokens(count int) int {
	return c.BaseTokens + c.TokensPerQuestion*count
}
