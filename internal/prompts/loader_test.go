package prompts

import (
	"strings"
	"testing"
)

func TestGet_AllTemplatesPresent(t *testing.T) {
	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"extraction.json", "parse-resume", "STRICT JSON"},
		{"extraction.json", "extract-job-metadata", "summary_line"},
		{"generation.json", "generate-resume", "fit_score"},
		{"generation.json", "generate-cover-letter", "body_paragraphs"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			if err != nil {
				t.Fatalf("Get(%q, %q) failed: %v", tt.filename, tt.key, err)
			}
			if !strings.Contains(prompt, tt.contains) {
				t.Errorf("prompt %q does not contain %q", tt.key, tt.contains)
			}
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("extraction.json", "no-such-key")
	if err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "parse-resume")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormat(t *testing.T) {
	result := Format("style: {{.TemplateStyle}}", map[string]string{"TemplateStyle": "modern"})
	if result != "style: modern" {
		t.Errorf("Format returned %q", result)
	}
}

func TestFormat_TemplateStylePlaceholder(t *testing.T) {
	for _, key := range []string{"generate-resume", "generate-cover-letter"} {
		template := MustGet("generation.json", key)
		rendered := Format(template, map[string]string{"TemplateStyle": "classic"})
		if strings.Contains(rendered, "{{.TemplateStyle}}") {
			t.Errorf("placeholder left unrendered in %q", key)
		}
		if !strings.Contains(rendered, "classic") {
			t.Errorf("style not substituted in %q", key)
		}
	}
}
