package prompts

import (
	"strings"
	"unicode/utf8"
)

// Character budgets for subject payloads, per use case. Short metadata
// extraction keeps the prompt cheap; full documents get more room.
const (
	MetadataBudget       = 2000
	JobDescriptionBudget = 6000
	ResumeTextBudget     = 12000
)

// Truncate cuts text to at most limit bytes, breaking at the last
// whitespace boundary before the limit so a word is never split. Text
// with no whitespace before the limit is hard-cut at a rune boundary.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	cut := text[:limit]
	if idx := strings.LastIndexAny(cut, " \t\n\r"); idx > 0 {
		return cut[:idx]
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}
