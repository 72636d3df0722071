// Package rod provides Chrome-based rendering: fetching JS-rendered HTML
// and recovering code snippets hidden behind interactive UI.
package rod

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements doccrawler.Fetcher at compile time.
var _ doccrawler.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a managed Chrome browser, so
// sites that assemble their documentation client-side render fully
// before extraction. Fetcher is safe for concurrent use.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher creates a Fetcher on a shared BrowserManager. The caller
// owns the manager's lifecycle.
func NewFetcher(manager *BrowserManager) *Fetcher {
	return &Fetcher{manager: manager}
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()
	if browser == nil {
		return "", doccrawler.Errorf(doccrawler.EINTERNAL, "browser manager is closed")
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
