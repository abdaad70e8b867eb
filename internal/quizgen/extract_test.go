package quizgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExtract_FencesAndTrailingCommas(t *testing.T) {
	clean := `[{"type":"multiple_choice","question":"Q?"},{"type":"matching","pairs":[]}]`
	noisy := "```json\n[{\"type\":\"multiple_choice\",\"question\":\"Q?\",},{\"type\":\"matching\",\"pairs\":[],},\n]\n```"

	want, err := Extract(clean)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	got, err := Extract(noisy)
	if err != nil {
		t.Fatalf("noisy: %v", err)
	}
	if !sameJSON(t, want, got) {
		t.Errorf("noisy extraction differs:\n got %s\nwant %s", got, want)
	}
}

func TestExtract_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"bare array", `[{"a":1},{"a":2}]`, 2},
		{"prose around", "Sure! Here are the questions:\n[{\"a\":1}]\nGood luck.", 1},
		{"leading fence only", "```json\n[{\"a\":1}]", 1},
		{"trailing fence only", "[{\"a\":1}]\n```", 1},
		{"fence without language", "```\n[{\"a\":1}]\n```", 1},
		{"empty array", "[]", 0},
		{"comma inside string kept", `[{"q":"a, ]"}]`, 1},
		{"whitespace before bracket", "[{\"a\":1} ,\n\t ]", 1},
		{"nested arrays", `[{"pairs":[{"left":"x","right":"y"},]}]`, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("got %d elements, want %d", len(got), tc.want)
			}
		})
	}
}

func TestExtract_StringContentUntouched(t *testing.T) {
	got, err := Extract(`[{"q":"trailing, ]"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var obj map[string]string
	if err := json.Unmarshal(got[0], &obj); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if obj["q"] != "trailing, ]" {
		t.Errorf("string content changed: %q", obj["q"])
	}
}

func TestExtract_NoArrayFound(t *testing.T) {
	for _, input := range []string{"", "I cannot help with that.", `{"a":1}`, "] backwards ["} {
		_, err := Extract(input)
		if !errors.Is(err, ErrNoArrayFound) {
			t.Errorf("Extract(%q) = %v, want ErrNoArrayFound", input, err)
		}
		var ee *ExtractionError
		if !errors.As(err, &ee) || ee.Raw != input {
			t.Errorf("Extract(%q): expected ExtractionError carrying raw text", input)
		}
	}
}

func TestExtract_Malformed(t *testing.T) {
	body := strings.Repeat(`{"question":"padding text"},`, 40)
	input := "[" + body + `{"question": oops}]`

	_, err := Extract(input)
	var m *MalformedJSONError
	if !errors.As(err, &m) {
		t.Fatalf("expected MalformedJSONError, got %v", err)
	}
	if m.Offset <= 0 {
		t.Errorf("offset = %d, want > 0", m.Offset)
	}
	if len([]rune(m.Snippet)) != snippetLen {
		t.Errorf("snippet has %d chars, want %d", len([]rune(m.Snippet)), snippetLen)
	}
	if !strings.HasPrefix(input, m.Snippet) {
		t.Error("snippet should be the start of the span")
	}
	if !strings.Contains(m.Near, "oops") {
		t.Errorf("near = %q, want it to contain the failure", m.Near)
	}
}

func TestExtract_ShortMalformedSnippetIsWholeSpan(t *testing.T) {
	_, err := Extract(`[{"a":}]`)
	var m *MalformedJSONError
	if !errors.As(err, &m) {
		t.Fatalf("expected MalformedJSONError, got %v", err)
	}
	if m.Snippet != `[{"a":}]` {
		t.Errorf("snippet = %q", m.Snippet)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n[1]\n```", "[1]"},
		{"```\n[1]", "[1]"},
		{"[1]\n```", "[1]"},
		{"  [1]  ", "[1]"},
		{"```[1]```", "[1]"},
	}
	for _, tc := range tests {
		if got := stripFences(tc.in); got != tc.want {
			t.Errorf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRepairTrailingCommas(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`[1,2,]`, `[1,2]`},
		{`[1,2 , ]`, `[1,2  ]`},
		{`{"a":1,}`, `{"a":1}`},
		{`["x,]",]`, `["x,]"]`},
		{`["esc\",]",]`, `["esc\",]"]`},
		{`[1,2]`, `[1,2]`},
	}
	for _, tc := range tests {
		if got := repairTrailingCommas(tc.in); got != tc.want {
			t.Errorf("repairTrailingCommas(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func sameJSON(t *testing.T, a, b []json.RawMessage) bool {
	t.Helper()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		var x, y any
		if err := json.Unmarshal(a[i], &x); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if err := json.Unmarshal(b[i], &y); err != nil {
			t.Fatalf("decode: %v", err)
		}
		xb, _ := json.Marshal(x)
		yb, _ := json.Marshal(y)
		if string(xb) != string(yb) {
			return false
		}
	}
	return true
}
