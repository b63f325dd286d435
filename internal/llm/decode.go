package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from model output.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")

	// Skip a language identifier on the fence line (```json, ```JSON, ...).
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}

// Decode strips a surrounding markdown fence from raw model output and
// parses the remainder as strict JSON into v. On any parse failure it
// returns a *DecodeError carrying the original raw text; it never returns
// a partially populated value as success.
func Decode(raw string, v any) error {
	cleaned := CleanJSONBlock(raw)

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	if err := dec.Decode(v); err != nil {
		return &DecodeError{RawOutput: raw, Cause: err}
	}

	// Reject trailing garbage after the first JSON value.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err != io.EOF {
		return &DecodeError{RawOutput: raw, Cause: errors.New("trailing data after JSON value")}
	}

	return nil
}
