package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_UnconfiguredKeyIsUnavailable(t *testing.T) {
	client, err := NewGemini(context.Background(), "", "gemini-2.0-flash")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.NoError(t, client.Close())
}
