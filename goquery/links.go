// Package goquery implements link extraction from rendered HTML.
package goquery

import (
	"net/url"
	"strings"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/PuerkitoBio/goquery"
)

// Ensure LinkExtractor implements doccrawler.LinkExtractor at compile time.
var _ doccrawler.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects every anchor on a page. Relative hrefs are
// resolved against the page URL; scope and relevance filtering happen in
// the crawler, not here.
type LinkExtractor struct{}

// NewLinkExtractor creates a LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns the discovered links,
// deduplicated by resolved URL in document order.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]doccrawler.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []doccrawler.Link

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}

		links = append(links, doccrawler.Link{
			URL:  resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}

// isNonHTTPLink reports whether the href uses a scheme that cannot be
// crawled.
func isNonHTTPLink(href string) bool {
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against the base URL, returning "" when the
// href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
