package doccrawler

import "context"

// SnippetExtractor recovers code samples hidden behind interactive UI
// (language tabs, selects) that static rendering misses.
type SnippetExtractor interface {
	// ExtractHidden navigates to the URL in an isolated browser context and
	// returns recovered code snippets keyed by lowercase language name.
	// Per-element failures are skipped, never fatal to the page.
	ExtractHidden(ctx context.Context, url string) (map[string][]string, error)

	// Close releases browser resources.
	Close() error
}
