//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Krish-Goyani/DocCrawler/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestClient(t *testing.T, ctx context.Context) *genai.Client {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client
}

func TestCompleter_Integration_ReturnsTextAndUsage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completer := gemini.NewCompleter(newTestClient(t, ctx))

	completion, err := completer.Complete(ctx, "Reply with the single word: pong", 0)

	require.NoError(t, err)
	assert.Contains(t, completion.Text, "pong")
	assert.Greater(t, completion.InputTokens, 0)
	assert.Greater(t, completion.OutputTokens, 0)
}

func TestEmbedder_Integration_ReturnsVector(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	embedder := gemini.NewEmbedder(newTestClient(t, ctx))

	values, err := embedder.Embed(ctx, "HTMX lets you access modern browser features directly from HTML.")

	require.NoError(t, err)
	assert.NotEmpty(t, values)
}
