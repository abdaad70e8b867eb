package llm

import "context"

// UnknownPurpose labels requests sent without WithPurpose.
const UnknownPurpose = "unknown"

type purposeKey struct{}

// WithPurpose labels the requests made with ctx in the event log,
// e.g. "quiz-gen".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or UnknownPurpose.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return UnknownPurpose
}
