package quizgen

import (
	"errors"
	"fmt"
)

var (
	// ErrNoArrayFound means the reply holds no [ ... ] span.
	ErrNoArrayFound = errors.New("no JSON array found in response")

	// ErrNotAnArray means the reply decoded to something other than an array.
	ErrNotAnArray = errors.New("response JSON is not an array")
)

// snippetLen is the minimum number of characters kept for diagnostics.
const snippetLen = 500

// MalformedJSONError reports a span that still fails to decode after repair.
type MalformedJSONError struct {
	// Offset is the byte offset of the failure within the repaired span.
	Offset int64

	// Snippet holds the start of the span, at least 500 characters when
	// the span is that long.
	Snippet string

	// Near holds the text around Offset.
	Near string

	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON at offset %d near %q: %v", e.Offset, e.Near, e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// ExtractionError wraps any failure to recover questions from a reply.
type ExtractionError struct {
	// Raw is the unmodified model output.
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract questions: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationError wraps a failure from the text-generation service.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate questions: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func asMalformed(err error) (*MalformedJSONError, bool) {
	var m *MalformedJSONError
	ok := errors.As(err, &m)
	return m, ok
}
