package quizgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

const fence = "```"

// Extract recovers the JSON array of question objects from a model reply.
// It tolerates a surrounding code fence, prose before and after the array
// and trailing commas. The returned elements are undecoded.
func Extract(raw string) ([]json.RawMessage, error) {
	elems, err := extract(raw)
	if err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}
	return elems, nil
}

func extract(raw string) ([]json.RawMessage, error) {
	text := stripFences(raw)

	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end < start {
		return nil, ErrNoArrayFound
	}
	span := repairTrailingCommas(text[start : end+1])

	var root json.RawMessage
	if err := json.Unmarshal([]byte(span), &root); err != nil {
		return nil, malformed(span, err)
	}
	root = bytes.TrimSpace(root)
	if len(root) == 0 || root[0] != '[' {
		return nil, ErrNotAnArray
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(root, &elems); err != nil {
		return nil, malformed(span, err)
	}
	return elems, nil
}

// stripFences drops a leading ```lang line and a trailing ``` when present.
// Either may appear without the other.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fence) {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, fence)
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// repairTrailingCommas removes commas that directly precede a closing ]
// or }, with only whitespace in between. String literals are left alone.
func repairTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func malformed(span string, err error) error {
	var offset int64
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	return &MalformedJSONError{
		Offset:  offset,
		Snippet: headRunes(span, snippetLen),
		Near:    around(span, int(offset), 40),
		Err:     err,
	}
}

// headRunes returns the first n characters of s.
func headRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// around returns up to radius bytes either side of offset.
func around(s string, offset, radius int) string {
	lo := max(0, offset-radius)
	hi := min(len(s), offset+radius)
	if lo > hi {
		return ""
	}
	return strings.ToValidUTF8(s[lo:hi], "")
}
