package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.DenseEmbedder = (*DenseEmbedder)(nil)

// DenseEmbedder is a mock implementation of doccrawler.DenseEmbedder.
type DenseEmbedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *DenseEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var _ doccrawler.SparseEncoder = (*SparseEncoder)(nil)

// SparseEncoder is a mock implementation of doccrawler.SparseEncoder.
type SparseEncoder struct {
	EncodeFn      func(text string) (doccrawler.SparseVector, error)
	EncodeQueryFn func(text string) (doccrawler.SparseVector, error)
}

func (e *SparseEncoder) Encode(text string) (doccrawler.SparseVector, error) {
	return e.EncodeFn(text)
}

func (e *SparseEncoder) EncodeQuery(text string) (doccrawler.SparseVector, error) {
	return e.EncodeQueryFn(text)
}
