package doccrawler

import "context"

// RankedDocument is one reranked result with its relevance score.
type RankedDocument struct {
	Index int     `json:"index"` // position in the input documents
	Text  string  `json:"text"`
	Score float64 `json:"relevance_score"`
}

// Reranker re-scores candidate documents against a query and returns the
// topN most relevant, best first.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]RankedDocument, error)
}
