// Package chunk turns crawled page records into metadata-tagged chunks
// using the completion API, including one per-target summary chunk.
package chunk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// summaryLinkCap bounds how many page URLs are offered to the summary
// link-selection call.
const summaryLinkCap = 180

// Pipeline chunks every crawled page and produces a summary chunk per
// target. All completion calls across the session share one semaphore so
// provider-side rate limits hold regardless of page count.
type Pipeline struct {
	Completer doccrawler.Completer
	Usage     doccrawler.UsageLog
	Errors    doccrawler.ErrorSink
	Scratch   doccrawler.ScratchStore
	Logger    *slog.Logger

	// Concurrency is the semaphore weight; defaults to 15.
	Concurrency int64

	mu           sync.Mutex
	requestCount int
	totalInput   int
	totalOutput  int
}

const defaultChunkConcurrency = 15

// Run chunks all pages per target and appends one summary chunk per
// target. Pages whose chunking call fails are recorded and skipped. The
// aggregated chunk list is persisted to scratch before being returned.
func (p *Pipeline) Run(ctx context.Context, sessionID string, results map[string][]*doccrawler.PageRecord) ([]*doccrawler.Chunk, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = defaultChunkConcurrency
	}
	sem := semaphore.NewWeighted(concurrency)

	var (
		outMu  sync.Mutex
		chunks []*doccrawler.Chunk
	)
	appendChunks := func(cs []*doccrawler.Chunk) {
		outMu.Lock()
		chunks = append(chunks, cs...)
		outMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for target, pages := range results {
		for _, page := range pages {
			g.Go(func() error {
				cs, err := p.chunkPage(gctx, sem, sessionID, page)
				if err != nil {
					p.recordFailure(gctx, sessionID, fmt.Sprintf("chunking failed for %s: %v", page.URL, err))
					return nil
				}
				appendChunks(cs)
				return nil
			})
		}
		g.Go(func() error {
			cs, err := p.summarize(gctx, sem, sessionID, target, pages)
			if err != nil {
				p.recordFailure(gctx, sessionID, fmt.Sprintf("summary failed for %s: %v", target, err))
				return nil
			}
			appendChunks(cs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.Scratch != nil {
		if err := p.Scratch.SaveChunks(ctx, sessionID, chunks); err != nil {
			p.recordFailure(ctx, sessionID, fmt.Sprintf("saving chunks to scratch: %v", err))
		}
	}
	return chunks, nil
}

// chunkPage runs one chunking call for a single page.
func (p *Pipeline) chunkPage(ctx context.Context, sem *semaphore.Weighted, sessionID string, page *doccrawler.PageRecord) ([]*doccrawler.Chunk, error) {
	payload, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	text, err := p.complete(ctx, sem, sessionID, fmt.Sprintf(chunkPrompt, string(payload)))
	if err != nil {
		return nil, err
	}
	chunks, dropped, err := ParseChunks(text)
	if err != nil {
		return nil, err
	}
	p.recordDropped(ctx, sessionID, page.URL, dropped)
	return chunks, nil
}

// summarize selects the target's most representative pages and distills
// them into a single summary chunk.
func (p *Pipeline) summarize(ctx context.Context, sem *semaphore.Weighted, sessionID, target string, pages []*doccrawler.PageRecord) ([]*doccrawler.Chunk, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(pages))
	for _, page := range pages {
		urls = append(urls, page.URL)
		if len(urls) == summaryLinkCap {
			break
		}
	}
	urlsJSON, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	text, err := p.complete(ctx, sem, sessionID, fmt.Sprintf(summaryLinksPrompt, string(urlsJSON)))
	if err != nil {
		return nil, err
	}
	selected, err := ParseURLList(text)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(selected))
	for _, u := range selected {
		wanted[u] = struct{}{}
	}
	var picked []*doccrawler.PageRecord
	for _, page := range pages {
		if _, ok := wanted[page.URL]; ok {
			picked = append(picked, page)
		}
	}
	if len(picked) == 0 {
		// Nothing matched the selection; summarize the landing page.
		picked = pages[:1]
	}

	pagesJSON, err := json.Marshal(picked)
	if err != nil {
		return nil, err
	}
	text, err = p.complete(ctx, sem, sessionID, fmt.Sprintf(summaryPrompt, string(pagesJSON)))
	if err != nil {
		return nil, err
	}
	chunks, dropped, err := ParseChunks(text)
	if err != nil {
		return nil, err
	}
	p.recordDropped(ctx, sessionID, target, dropped)
	return chunks, nil
}

// complete gates one completion call on the shared semaphore and logs
// its token usage.
func (p *Pipeline) complete(ctx context.Context, sem *semaphore.Weighted, sessionID, prompt string) (string, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer sem.Release(1)

	started := time.Now()
	completion, err := p.Completer.Complete(ctx, prompt, 0)
	if err != nil {
		return "", err
	}
	p.logUsage(ctx, sessionID, completion, time.Since(started))
	return completion.Text, nil
}

func (p *Pipeline) logUsage(ctx context.Context, sessionID string, c *doccrawler.Completion, elapsed time.Duration) {
	if p.Usage == nil {
		return
	}

	p.mu.Lock()
	p.requestCount++
	p.totalInput += c.InputTokens
	p.totalOutput += c.OutputTokens
	rec := &doccrawler.UsageRecord{
		Timestamp:         time.Now().UTC(),
		RequestType:       "chunking",
		RequestCount:      p.requestCount,
		InputTokens:       c.InputTokens,
		OutputTokens:      c.OutputTokens,
		TotalInputTokens:  p.totalInput,
		TotalOutputTokens: p.totalOutput,
		Duration:          elapsed,
	}
	p.mu.Unlock()

	if err := p.Usage.SaveUsage(ctx, rec); err != nil {
		p.recordFailure(ctx, sessionID, fmt.Sprintf("saving usage record: %v", err))
	}
}

// recordDropped reports chunks the parser rejected, keyed by the page or
// target they came from.
func (p *Pipeline) recordDropped(ctx context.Context, sessionID, origin string, dropped []error) {
	for _, err := range dropped {
		p.recordFailure(ctx, sessionID, fmt.Sprintf("invalid chunk dropped for %s: %v", origin, err))
	}
}

func (p *Pipeline) recordFailure(ctx context.Context, sessionID, message string) {
	p.logger().Warn("chunking", "error", message)
	if p.Errors == nil {
		return
	}
	_ = p.Errors.Record(ctx, sessionID, message)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
