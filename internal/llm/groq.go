package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultGroqBaseURL is the Groq OpenAI-compatible API root.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// Groq implements Client against an OpenAI-compatible chat completions
// endpoint. It is used for short metadata extraction where a fast model
// beats a capable one.
type Groq struct {
	apiKey  string
	baseURL string
	model   string
	httpDo  *http.Client
}

// NewGroq creates a Groq client. An empty API key yields a client whose
// Generate always reports ErrUnavailable.
func NewGroq(apiKey, model string) *Groq {
	return &Groq{
		apiKey:  apiKey,
		baseURL: DefaultGroqBaseURL,
		model:   model,
		httpDo:  &http.Client{},
	}
}

// WithBaseURL overrides the API root. Used by tests to point at a local server.
func (c *Groq) WithBaseURL(baseURL string) *Groq {
	c.baseURL = baseURL
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string        `json:"model"`
	Temperature float32       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Generate sends one chat completion request. The system instruction and
// user payload map onto the corresponding chat roles. There is no retry;
// the caller's ctx bounds the wait.
func (c *Groq) Generate(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnavailable
	}

	reqBody := chatCompletionsRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", &TransportError{Cause: err}
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &UpstreamError{Status: resp.StatusCode, Detail: string(body)}
	}

	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Detail: "malformed completion envelope"}
	}
	if len(out.Choices) == 0 {
		return "", &UpstreamError{Status: resp.StatusCode, Detail: "no choices returned by model"}
	}

	return out.Choices[0].Message.Content, nil
}
