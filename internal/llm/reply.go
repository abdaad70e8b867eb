package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopFiltered  = "filtered"
)

// reply is what an adapter pulled out of a vendor response before it is
// checked and turned into a Response.
type reply struct {
	provider string
	model    string
	text     string
	stop     string
	usage    Usage

	// blocked names why the vendor withheld the text when stop is StopFiltered.
	blocked string
}

// finish rejects replies the quiz pipeline cannot use: truncated output,
// filtered output and empty output.
func (r reply) finish() (*Response, error) {
	content := json.RawMessage(r.text)
	switch {
	case r.stop == StopMaxTokens:
		return nil, &ErrMaxTokensExceeded{Content: content}
	case r.stop == StopFiltered:
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("%s withheld the reply: %s", r.provider, r.blocked)}
	case strings.TrimSpace(r.text) == "":
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s returned no text", r.provider)}
	}

	if r.usage.TotalTokens == 0 {
		r.usage.TotalTokens = r.usage.InputTokens + r.usage.OutputTokens
	}
	if r.stop == "" {
		r.stop = StopEnd
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: r.stop}, nil
}

// statusError maps a failed HTTP exchange with a vendor API. header may be
// nil when the SDK does not expose it.
func statusError(status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	}
	return &ErrProviderUnavailable{StatusCode: status, Err: err}
}

// retryAfter reads a Retry-After header in either seconds or HTTP-date form.
func retryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// resolveModel maps a friendly model name to a vendor model ID. Unknown
// names are taken to be vendor IDs already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
