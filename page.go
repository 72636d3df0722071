package doccrawler

import "context"

// PageRecord is one crawled page within a target's result list.
// Records are append-only during the crawl; the snippet phase may later
// rewrite Content in place, identified by URL equality, so URLs must be
// unique per target.
type PageRecord struct {
	URL     string `json:"href"`
	Content string `json:"content"` // Markdown
	BaseURL string `json:"base_url"`
}

// Link is an outbound link discovered on a page.
type Link struct {
	URL  string
	Text string
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// LinkExtractor parses outbound links from rendered HTML.
type LinkExtractor interface {
	// ExtractLinks returns the anchors found in html.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]Link, error)
}
