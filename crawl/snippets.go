package crawl

import (
	"context"
	"fmt"
	"log/slog"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"golang.org/x/sync/errgroup"
)

// SnippetCrawler revisits every crawled page with an interactive browser
// pass and folds recovered code snippets back into the stored content.
type SnippetCrawler struct {
	Extractor doccrawler.SnippetExtractor
	Errors    doccrawler.ErrorSink
	Logger    *slog.Logger

	Workers int
}

const defaultSnippetWorkers = 20

// Run enriches all page records in the session state. Page failures are
// recorded and skipped; pages with no recoverable snippets are left
// untouched. Run returns once every page has been visited.
func (sc *SnippetCrawler) Run(ctx context.Context, state *State) error {
	workers := sc.Workers
	if workers <= 0 {
		workers = defaultSnippetWorkers
	}

	type job struct {
		target string
		url    string
	}
	var jobs []job
	for target, pages := range state.Results() {
		for _, page := range pages {
			jobs = append(jobs, job{target: target, url: page.URL})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			snippets, err := sc.Extractor.ExtractHidden(gctx, j.url)
			if err != nil {
				sc.logger().Warn("snippet extraction skipped", "url", j.url, "error", err)
				if sc.Errors != nil {
					_ = sc.Errors.Record(gctx, state.SessionID, fmt.Sprintf("snippet extraction failed for %s: %v", j.url, err))
				}
				return nil
			}
			if len(snippets) == 0 {
				return nil
			}
			for _, page := range state.Pages(j.target) {
				if page.URL != j.url {
					continue
				}
				state.RewriteContent(j.target, j.url, MergeSnippets(page.Content, snippets))
				break
			}
			return nil
		})
	}
	return g.Wait()
}

func (sc *SnippetCrawler) logger() *slog.Logger {
	if sc.Logger != nil {
		return sc.Logger
	}
	return slog.Default()
}
