package prompts

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"under limit", "short text", 100, "short text"},
		{"exactly at limit", "12345", 5, "12345"},
		{"breaks at whitespace", "alpha beta gamma", 12, "alpha beta"},
		{"never mid-word", "hello world", 8, "hello"},
		{"no whitespace hard cut", "abcdefghij", 4, "abcd"},
		{"hard cut backs off mid-rune", "日本語", 4, "日"},
		{"hard cut on rune boundary", "日本語", 6, "日本"},
		{"newline boundary", "line one\nline two", 10, "line one"},
		{"zero limit returns input", "text", 0, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.limit)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, result, tt.expected)
			}
		})
	}
}

func TestTruncate_NeverExceedsLimit(t *testing.T) {
	text := strings.Repeat("word ", 1000)
	for _, limit := range []int{MetadataBudget, JobDescriptionBudget, ResumeTextBudget, 17, 1} {
		if got := Truncate(text, limit); len(got) > limit {
			t.Errorf("Truncate exceeded limit %d: got %d chars", limit, len(got))
		}
	}
}

func TestTruncate_KeepsUTF8Valid(t *testing.T) {
	text := strings.Repeat("résumé", 100)
	for limit := 1; limit < 20; limit++ {
		got := Truncate(text, limit)
		if !utf8.ValidString(got) {
			t.Errorf("Truncate(..., %d) = %q is not valid UTF-8", limit, got)
		}
	}
}
