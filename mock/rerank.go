package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.Reranker = (*Reranker)(nil)

// Reranker is a mock implementation of doccrawler.Reranker.
type Reranker struct {
	RerankFn func(ctx context.Context, query string, documents []string, topN int) ([]doccrawler.RankedDocument, error)
}

func (r *Reranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]doccrawler.RankedDocument, error) {
	return r.RerankFn(ctx, query, documents, topN)
}
