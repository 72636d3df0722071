package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.Ingestor = (*Ingestor)(nil)

// Ingestor is a mock implementation of doccrawler.Ingestor.
type Ingestor struct {
	IngestFn func(ctx context.Context, sessionID string, urls []string) (*doccrawler.IngestResult, error)
}

func (i *Ingestor) Ingest(ctx context.Context, sessionID string, urls []string) (*doccrawler.IngestResult, error) {
	return i.IngestFn(ctx, sessionID, urls)
}

var _ doccrawler.Querier = (*Querier)(nil)

// Querier is a mock implementation of doccrawler.Querier.
type Querier struct {
	QueryFn func(ctx context.Context, text string, filters map[string]any, alpha float64, topK, topN int) ([]doccrawler.RankedDocument, error)
}

func (q *Querier) Query(ctx context.Context, text string, filters map[string]any, alpha float64, topK, topN int) ([]doccrawler.RankedDocument, error) {
	return q.QueryFn(ctx, text, filters, alpha, topK, topN)
}
