package readability

import (
	"strings"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements doccrawler.Extractor at compile time.
var _ doccrawler.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*doccrawler.ExtractResult, error) {
	if rawHTML == "" {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &doccrawler.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
