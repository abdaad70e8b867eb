package llm

import (
	"slices"
	"strings"
)

// ModelCost is list pricing in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// priceRule prices every model whose ID starts with family. Dated
// snapshots and preview suffixes share their family's price.
type priceRule struct {
	family string
	cost   ModelCost
}

// priceRules holds list prices as of 2026-02. Lookup picks the longest
// matching family, so "gemini-2.5-flash-lite" wins over "gemini-2.5-flash".
var priceRules = sortedRules([]priceRule{
	// Gemini
	{"gemini-1.5-flash", ModelCost{0.075, 0.3}},
	{"gemini-1.5-pro", ModelCost{1.25, 5}},
	{"gemini-2.0-flash", ModelCost{0.1, 0.4}},
	{"gemini-2.0-flash-lite", ModelCost{0.075, 0.3}},
	{"gemini-2.5-flash", ModelCost{0.3, 2.5}},
	{"gemini-2.5-flash-lite", ModelCost{0.1, 0.4}},
	{"gemini-2.5-pro", ModelCost{1.25, 10}},
	{"gemini-3-flash", ModelCost{0.5, 3}},
	{"gemini-3-pro", ModelCost{2, 12}},
	{"gemini-flash-latest", ModelCost{0.3, 2.5}},
	{"gemini-flash-lite-latest", ModelCost{0.1, 0.4}},

	// OpenAI
	{"gpt-4o", ModelCost{2.5, 10}},
	{"gpt-4o-mini", ModelCost{0.15, 0.6}},
	{"gpt-4.1", ModelCost{2, 8}},
	{"gpt-4.1-mini", ModelCost{0.4, 1.6}},
	{"gpt-4.1-nano", ModelCost{0.1, 0.4}},
	{"gpt-5", ModelCost{1.25, 10}},
	{"gpt-5-mini", ModelCost{0.25, 2}},
	{"gpt-5-nano", ModelCost{0.05, 0.4}},
	{"gpt-5.2", ModelCost{1.75, 14}},
	{"o3", ModelCost{2, 8}},
	{"o3-mini", ModelCost{1.1, 4.4}},
	{"o4-mini", ModelCost{1.1, 4.4}},

	// Anthropic
	{"claude-3-5-haiku", ModelCost{0.8, 4}},
	{"claude-3-haiku", ModelCost{0.25, 1.25}},
	{"claude-haiku-4-5", ModelCost{1, 5}},
	{"claude-sonnet-4", ModelCost{3, 15}},
	{"claude-3-7-sonnet", ModelCost{3, 15}},
	{"claude-opus-4-5", ModelCost{5, 25}},
	{"claude-opus-4", ModelCost{15, 75}},

	// The demo provider is free.
	{"mock", ModelCost{}},
})

func sortedRules(rules []priceRule) []priceRule {
	slices.SortFunc(rules, func(a, b priceRule) int { return len(b.family) - len(a.family) })
	return rules
}

// LookupCost prices a model ID as recorded in the event log. OpenRouter
// IDs carry a vendor prefix ("google/gemini-2.5-flash") and Gemini may
// report "models/..."; both are ignored. Returns nil for unknown models.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	for _, r := range priceRules {
		if id == r.family || strings.HasPrefix(id, r.family+"-") {
			c := r.cost
			return &c
		}
	}
	return nil
}
