// Package llm provides completion API clients and strict response decoding.
//
// Two providers are wired: Gemini for document-scale work (resume parsing,
// resume and cover letter generation) and Groq for short metadata
// extraction. Both resolve their API key and model once from process
// configuration; neither retries a failed request.
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client is an abstraction over completion providers. Generate sends
// exactly one request composed of a system instruction and a user payload
// and returns the raw text output. Non-success is always one of the typed
// errors in this package: ErrUnavailable, *TransportError or *UpstreamError.
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Gemini implements Client for the Google Gemini API.
type Gemini struct {
	client *genai.Client // nil when no API key was configured
	model  string
}

// NewGemini creates a Gemini client. An empty API key yields a client
// whose Generate always reports ErrUnavailable, so an unconfigured
// deployment still starts and fails only the endpoints that need it.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return &Gemini{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	return &Gemini{client: client, model: model}, nil
}

// Generate sends a single generation request. The caller bounds the wait
// through ctx; once issued the upstream call cannot be aborted, only
// abandoned.
func (g *Gemini) Generate(ctx context.Context, system, user string) (string, error) {
	if g.client == nil {
		return "", ErrUnavailable
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	prompt := system
	if user != "" {
		prompt = system + "\n\n" + user
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	return extractText(resp)
}

// Close releases resources held by the client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// classifyGeminiError splits SDK errors into upstream (the API answered
// with a failure status) and transport (the API was never reached).
func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{Status: apiErr.Code, Detail: apiErr.Message}
	}
	return &TransportError{Cause: err}
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &UpstreamError{Status: 200, Detail: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &UpstreamError{Status: 200, Detail: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &UpstreamError{Status: 200, Detail: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
