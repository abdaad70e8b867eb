package logger

import "testing"

func TestSanitizeKVs_RedactsCredentials(t *testing.T) {
	got := sanitizeKVs([]interface{}{"api_key", "sk-123", "model", "gemini", "access_token", "abc", "input_tokens", 12})

	want := []interface{}{"api_key", "[REDACTED]", "model", "gemini", "access_token", "[REDACTED]", "input_tokens", 12}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kv[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSanitizeKVs_OddLengthKeepsTrailingKey(t *testing.T) {
	got := sanitizeKVs([]interface{}{"purpose", "quiz-gen", "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("dev", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("hello", "k", "v")
	l.With("session_id", "x").Warn("warn")
	l.Sync()
}
