package doccrawler

import "context"

// IngestResult summarizes one completed ingestion session.
type IngestResult struct {
	SessionID string `json:"session_id"`
	Targets   int    `json:"targets"`
	Pages     int    `json:"pages"`
	Chunks    int    `json:"chunks"`
	Upserted  int    `json:"upserted"`
}

// Ingestor runs the full crawl-to-index pipeline for a set of start URLs
// under one session.
type Ingestor interface {
	Ingest(ctx context.Context, sessionID string, urls []string) (*IngestResult, error)
}

// Querier answers search requests against the indexed documentation.
type Querier interface {
	Query(ctx context.Context, text string, filters map[string]any, alpha float64, topK, topN int) ([]RankedDocument, error)
}
