package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.SnippetExtractor = (*SnippetExtractor)(nil)

// SnippetExtractor is a mock implementation of doccrawler.SnippetExtractor.
type SnippetExtractor struct {
	ExtractHiddenFn func(ctx context.Context, url string) (map[string][]string, error)
	CloseFn         func() error
}

func (s *SnippetExtractor) ExtractHidden(ctx context.Context, url string) (map[string][]string, error) {
	return s.ExtractHiddenFn(ctx, url)
}

func (s *SnippetExtractor) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
