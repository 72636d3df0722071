package doccrawler

import "context"

// DenseEmbedder computes fixed-dimension semantic embeddings.
type DenseEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SparseEncoder computes lexical sparse vectors. Encode weights terms
// for documents, EncodeQuery for queries. Encoders must be
// deterministic: a fixed input always yields identical indices and
// values.
type SparseEncoder interface {
	Encode(text string) (SparseVector, error)
	EncodeQuery(text string) (SparseVector, error)
}
