package gemini

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// Ensure Embedder implements doccrawler.DenseEmbedder at compile time.
var _ doccrawler.DenseEmbedder = (*Embedder)(nil)

// Embedder implements doccrawler.DenseEmbedder using Gemini embeddings.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates an Embedder on the default embedding model.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client, model: embeddingModel}
}

// Embed returns the dense embedding of the text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "text required")
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return nil, classify(err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, doccrawler.Errorf(doccrawler.EINTERNAL, "gemini returned empty embedding")
	}
	return result.Embeddings[0].Values, nil
}
