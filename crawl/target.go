package crawl

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var nonWordRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a page title and collapses every non-alphanumeric
// run into a single underscore.
func Slugify(title string) string {
	slug := nonWordRE.ReplaceAllString(strings.ToLower(title), "_")
	return strings.Trim(slug, "_")
}

// hostSlug derives a fallback name from the URL's hostname.
func hostSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ReplaceAll(u.Hostname(), ".", "_")
}

// DeriveTargets names each start URL by fetching its landing page and
// slugifying the page title. When the title cannot be obtained the
// hostname stands in, so a target always has a usable name.
func DeriveTargets(ctx context.Context, fetcher doccrawler.Fetcher, extractor doccrawler.Extractor, urls []string) []doccrawler.CrawlTarget {
	targets := make([]doccrawler.CrawlTarget, 0, len(urls))
	for _, rawURL := range urls {
		name := ""
		if html, err := fetcher.Fetch(ctx, rawURL); err == nil {
			if extracted, err := extractor.Extract(html); err == nil {
				name = Slugify(extracted.Title)
			}
		}
		if name == "" {
			name = hostSlug(rawURL)
		}
		targets = append(targets, doccrawler.CrawlTarget{Name: name, URL: rawURL})
	}
	return targets
}
