package mock

import (
	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of doccrawler.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*doccrawler.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*doccrawler.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ doccrawler.Converter = (*Converter)(nil)

// Converter is a mock implementation of doccrawler.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ doccrawler.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of doccrawler.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]doccrawler.Link, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]doccrawler.Link, error) {
	return l.ExtractLinksFn(html, baseURL)
}
