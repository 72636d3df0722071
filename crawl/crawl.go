// Package crawl provides documentation crawling orchestration.
// It coordinates sitemap discovery, rendering, extraction, link filtering
// and snippet recovery for a crawl session.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"
)

// Crawler drains a session frontier with a pool of workers, turning URLs
// into page records and discovering further links up to the depth bound.
type Crawler struct {
	Sitemaps    doccrawler.SitemapService
	Fetcher     doccrawler.Fetcher
	Extractor   doccrawler.Extractor
	Converter   doccrawler.Converter
	Links       doccrawler.LinkExtractor
	Filter      *LinkFilter
	RateLimiter doccrawler.DomainLimiter
	Errors      doccrawler.ErrorSink
	Logger      *slog.Logger

	Workers  int
	MaxDepth int

	// RetryDelays are the backoff delays between fetch attempts; nil uses
	// DefaultRetryDelays.
	RetryDelays []time.Duration
}

const (
	defaultWorkers  = 60
	defaultMaxDepth = 3
)

// Run seeds the frontier from the given targets and processes entries
// until it drains. Targets whose sitemap yields URLs are seeded with all
// of them in sitemap mode; otherwise the start URL alone is seeded for
// recursive discovery. Per-page failures are recorded and skipped. Run
// returns once every worker has exited.
func (c *Crawler) Run(ctx context.Context, state *State, targets []doccrawler.CrawlTarget) error {
	workers := c.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	frontier := state.Frontier()
	for _, t := range targets {
		c.seed(ctx, frontier, t)
	}

	// Unblock workers parked in Pop if the session is canceled.
	stopWatch := context.AfterFunc(ctx, frontier.Close)
	defer stopWatch()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				entry, ok := frontier.Pop()
				if !ok {
					return nil
				}
				c.process(gctx, state, entry, maxDepth)
				frontier.Done()
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// seed queues a target's initial entries. Sitemap URLs take precedence
// over recursive discovery from the start URL.
func (c *Crawler) seed(ctx context.Context, frontier *Frontier, target doccrawler.CrawlTarget) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, target.URL, nil)
	if err != nil {
		c.logger().Warn("sitemap discovery failed, falling back to recursive crawl",
			"target", target.Name, "url", target.URL, "error", err)
	}
	if len(urls) > 0 {
		for _, u := range urls {
			frontier.Push(Entry{
				URL:         u,
				Depth:       1,
				Target:      target.Name,
				BaseURL:     target.URL,
				SitemapMode: true,
			})
		}
		c.logger().Info("seeded from sitemap", "target", target.Name, "urls", len(urls))
		return
	}
	frontier.Push(Entry{
		URL:     target.URL,
		Depth:   1,
		Target:  target.Name,
		BaseURL: target.URL,
	})
}

// process handles one frontier entry: fetch, extract, convert, record and
// expand. Failures are recorded to the error sink; nothing here aborts
// the session.
func (c *Crawler) process(ctx context.Context, state *State, entry Entry, maxDepth int) {
	if entry.Depth >= maxDepth && !entry.SitemapMode {
		return
	}
	if ctx.Err() != nil {
		return
	}

	if host := hostOf(entry.URL); host != "" && c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, host); err != nil {
			return
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := fetchWithRetry(ctx, c.Fetcher, entry.URL, delays, c.logger())
	if err != nil {
		c.recordFailure(ctx, state.SessionID, entry.URL, "fetch", err)
		return
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		c.recordFailure(ctx, state.SessionID, entry.URL, "extract", err)
		return
	}
	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		c.recordFailure(ctx, state.SessionID, entry.URL, "convert", err)
		return
	}

	state.AppendPage(entry.Target, &doccrawler.PageRecord{
		URL:     entry.URL,
		Content: markdown,
		BaseURL: entry.BaseURL,
	})

	// Sitemap entries are leaves; the sitemap already enumerated the site.
	if entry.SitemapMode {
		return
	}
	if entry.Depth+1 >= maxDepth {
		return
	}
	// Skip link selection entirely once the target's budget is gone.
	if !state.BudgetRemaining(entry.Target) {
		return
	}

	c.expand(ctx, state, entry, html)
}

// expand discovers in-scope links on the page and queues the ones the
// filter keeps.
func (c *Crawler) expand(ctx context.Context, state *State, entry Entry, html string) {
	links, err := c.Links.ExtractLinks(html, entry.URL)
	if err != nil {
		c.recordFailure(ctx, state.SessionID, entry.URL, "link extraction", err)
		return
	}

	frontier := state.Frontier()
	candidates := make([]string, 0, len(links))
	seenHere := make(map[string]struct{}, len(links))
	for _, link := range links {
		u := stripFragment(link.URL)
		if u == "" || u == entry.URL {
			continue
		}
		if !sameSite(entry.BaseURL, u) {
			continue
		}
		if _, dup := seenHere[u]; dup {
			continue
		}
		seenHere[u] = struct{}{}
		if frontier.Seen(u) {
			continue
		}
		candidates = append(candidates, u)
	}
	if len(candidates) == 0 {
		return
	}

	selected := candidates
	if c.Filter != nil {
		selected = c.Filter.Filter(ctx, state, entry.Target, candidates)
	}
	for _, u := range selected {
		frontier.Push(Entry{
			URL:     u,
			Depth:   entry.Depth + 1,
			Target:  entry.Target,
			BaseURL: entry.BaseURL,
		})
	}
}

func (c *Crawler) recordFailure(ctx context.Context, sessionID, pageURL, stage string, err error) {
	c.logger().Warn("page skipped", "url", pageURL, "stage", stage, "error", err)
	if c.Errors == nil {
		return
	}
	_ = c.Errors.Record(ctx, sessionID, fmt.Sprintf("%s failed for %s: %v", stage, pageURL, err))
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// sameSite reports whether two URLs share a registrable domain, so
// docs.example.com and example.com count as the same site while
// example.github.io and other.github.io do not. Hosts whose registrable
// domain cannot be derived fall back to exact host comparison.
func sameSite(baseURL, candidateURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	cand, err := url.Parse(candidateURL)
	if err != nil {
		return false
	}
	if cand.Scheme != "http" && cand.Scheme != "https" {
		return false
	}

	baseDomain, err1 := publicsuffix.EffectiveTLDPlusOne(base.Hostname())
	candDomain, err2 := publicsuffix.EffectiveTLDPlusOne(cand.Hostname())
	if err1 != nil || err2 != nil {
		return base.Hostname() == cand.Hostname()
	}
	return baseDomain == candDomain
}
