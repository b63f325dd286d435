package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroq_Generate(t *testing.T) {
	var gotAuth string
	var gotBody chatCompletionsRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"job_title\":\"Engineer\"}"}}]}`))
	}))
	defer server.Close()

	client := NewGroq("gsk_test", "llama-3.3-70b-versatile").WithBaseURL(server.URL)

	out, err := client.Generate(context.Background(), "extract metadata", "some job description")
	require.NoError(t, err)
	assert.Equal(t, `{"job_title":"Engineer"}`, out)

	assert.Equal(t, "Bearer gsk_test", gotAuth)
	assert.Equal(t, "llama-3.3-70b-versatile", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
}

func TestGroq_Generate_Unavailable(t *testing.T) {
	client := NewGroq("", "llama-3.3-70b-versatile")

	_, err := client.Generate(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGroq_Generate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer server.Close()

	client := NewGroq("gsk_test", "m").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "sys", "user")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Detail, "rate limit")
}

func TestGroq_Generate_TransportError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewGroq("gsk_test", "m").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "sys", "user")

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestGroq_Generate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewGroq("gsk_test", "m").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "sys", "user")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestGroq_Generate_ContextTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewGroq("gsk_test", "m").WithBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "sys", "user")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.True(t, errors.Is(err, context.Canceled))
}
