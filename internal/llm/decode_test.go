package llm

import (
	"errors"
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"generic fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with surrounding space", " ```json\n{\"a\":1}\n``` ", `{"a":1}`},
		{"uppercase tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"no trailing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"brace on fence line", "```{\"a\":1}\n```", `{"a":1}`},
		{"plain text", "not json", "not json"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDecode_FencedRoundTrip(t *testing.T) {
	var out map[string]int
	if err := Decode(" ```json\n{\"a\":1}\n``` ", &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out["a"] != 1 {
		t.Errorf("expected a=1, got %v", out)
	}
}

func TestDecode_BareJSON(t *testing.T) {
	var out map[string]int
	if err := Decode(`{"a":1}`, &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out["a"] != 1 {
		t.Errorf("expected a=1, got %v", out)
	}
}

func TestDecode_InvalidJSONCarriesRawOutput(t *testing.T) {
	var out map[string]any
	err := Decode("not json", &out)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decodeErr.RawOutput != "not json" {
		t.Errorf("RawOutput = %q, want %q", decodeErr.RawOutput, "not json")
	}
}

func TestDecode_TrailingGarbage(t *testing.T) {
	var out map[string]any
	err := Decode(`{"a":1} trailing`, &out)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestDecode_NeverReturnsPartialStructure(t *testing.T) {
	type result struct {
		JobTitle string `json:"job_title"`
	}

	var out result
	err := Decode(`{"job_title": "Engineer", "company":`, &out)
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}
