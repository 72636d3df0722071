// Package ingest composes the pipeline stages of one session: crawl,
// snippet enrichment, chunking, embedding and indexing.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/chunk"
	"github.com/Krish-Goyani/DocCrawler/crawl"
	"github.com/Krish-Goyani/DocCrawler/embed"
	"github.com/Krish-Goyani/DocCrawler/index"
)

// Ensure Service implements doccrawler.Ingestor at compile time.
var _ doccrawler.Ingestor = (*Service)(nil)

// Service runs the full crawl-to-index pipeline. Stage failures on
// individual pages or chunks degrade the result; only an empty crawl, a
// failed upsert or the session deadline abort it.
type Service struct {
	Fetcher   doccrawler.Fetcher
	Extractor doccrawler.Extractor

	Crawler  *crawl.Crawler
	Snippets *crawl.SnippetCrawler
	Chunks   *chunk.Pipeline
	Embeds   *embed.Pipeline
	Index    *index.Manager

	Scratch doccrawler.ScratchStore
	Logger  *slog.Logger

	// BudgetCap is the per-target link-filter call budget; defaults to 20.
	BudgetCap int
}

const defaultBudgetCap = 20

// Ingest crawls the start URLs, enriches and chunks the pages, embeds
// the chunks and upserts them into the vector index.
func (s *Service) Ingest(ctx context.Context, sessionID string, urls []string) (*doccrawler.IngestResult, error) {
	if sessionID == "" {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "session ID required")
	}
	if len(urls) == 0 {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "at least one URL is required")
	}

	budgetCap := s.BudgetCap
	if budgetCap <= 0 {
		budgetCap = defaultBudgetCap
	}

	targets := crawl.DeriveTargets(ctx, s.Fetcher, s.Extractor, urls)
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	state := crawl.NewState(sessionID, targets, budgetCap)
	if err := s.Crawler.Run(ctx, state, targets); err != nil {
		return nil, err
	}

	if s.Snippets != nil {
		if err := s.Snippets.Run(ctx, state); err != nil {
			return nil, err
		}
	}

	results := state.Results()
	var pages int
	for target, records := range results {
		pages += len(records)
		if s.Scratch != nil {
			if err := s.Scratch.SavePages(ctx, sessionID, target, records); err != nil {
				s.logger().Warn("saving pages to scratch failed", "target", target, "error", err)
			}
		}
	}
	if pages == 0 {
		return nil, doccrawler.Errorf(doccrawler.ENOTFOUND, "no pages could be crawled from the given URLs")
	}
	s.logger().Info("crawl complete", "session", sessionID, "targets", len(targets), "pages", pages)

	chunks, err := s.Chunks.Run(ctx, sessionID, results)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, doccrawler.Errorf(doccrawler.ENOTFOUND, "chunking produced no usable chunks")
	}

	records, err := s.Embeds.Embed(ctx, sessionID, chunks)
	if err != nil {
		return nil, err
	}

	upserted, err := s.Index.ProvisionAndUpsert(ctx, sessionID, records)
	if err != nil {
		return nil, fmt.Errorf("indexing session %s: %w", sessionID, err)
	}

	return &doccrawler.IngestResult{
		SessionID: sessionID,
		Targets:   len(targets),
		Pages:     pages,
		Chunks:    len(chunks),
		Upserted:  upserted,
	}, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
