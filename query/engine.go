// Package query answers search requests with hybrid retrieval followed
// by reranking.
package query

import (
	"context"
	"log/slog"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Engine embeds the query text, runs an alpha-weighted hybrid search
// against the vector index, and reranks the matches.
type Engine struct {
	Dense    doccrawler.DenseEmbedder
	Sparse   doccrawler.SparseEncoder
	Store    doccrawler.VectorStore
	Reranker doccrawler.Reranker
	Logger   *slog.Logger

	IndexName string
	Namespace string
}

// Defaults for search depth.
const (
	DefaultTopK = 20
	DefaultTopN = 5
)

// Query runs the full retrieval path. Alpha weights dense versus sparse
// relevance and must be in [0, 1]. Filters use the caller's shorthand
// form and are translated before querying. The result is at most topN
// documents, best first, with relevance scores.
func (e *Engine) Query(ctx context.Context, text string, filters map[string]any, alpha float64, topK, topN int) ([]doccrawler.RankedDocument, error) {
	if text == "" {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "query text is required")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	dense, err := e.Dense.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	var sparse doccrawler.SparseVector
	if e.Sparse != nil {
		if sparse, err = e.Sparse.EncodeQuery(text); err != nil {
			e.logger().Warn("sparse query encoding failed, querying dense-only", "error", err)
			sparse = doccrawler.SparseVector{}
		}
	}

	scaledDense, scaledSparse, err := HybridScale(dense, sparse, alpha)
	if err != nil {
		return nil, err
	}

	hosts, err := e.Store.ListIndexes(ctx)
	if err != nil {
		return nil, err
	}
	host, ok := hosts[e.IndexName]
	if !ok {
		return nil, doccrawler.Errorf(doccrawler.ENOTFOUND, "index %q does not exist", e.IndexName)
	}

	matches, err := e.Store.Query(ctx, host, &doccrawler.VectorQuery{
		Namespace:       e.Namespace,
		Vector:          scaledDense,
		SparseVector:    scaledSparse,
		TopK:            topK,
		Filter:          TranslateFilters(filters),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	documents := matchDocuments(matches)
	if len(documents) == 0 {
		return nil, nil
	}
	if e.Reranker == nil {
		return headDocuments(documents, topN), nil
	}
	return e.Reranker.Rerank(ctx, text, documents, topN)
}

// matchDocuments extracts chunk text from match metadata, skipping
// matches without it.
func matchDocuments(matches []doccrawler.QueryMatch) []string {
	var documents []string
	for _, m := range matches {
		text, ok := m.Metadata["chunked_data"].(string)
		if !ok || text == "" {
			continue
		}
		documents = append(documents, text)
	}
	return documents
}

// headDocuments returns up to n documents in retrieval order with
// vector-store ordering as the only ranking signal.
func headDocuments(documents []string, n int) []doccrawler.RankedDocument {
	if n > len(documents) {
		n = len(documents)
	}
	ranked := make([]doccrawler.RankedDocument, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, doccrawler.RankedDocument{Index: i, Text: documents[i]})
	}
	return ranked
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// HybridScale weights a dense/sparse vector pair by alpha: dense values
// are multiplied by alpha and sparse values by 1-alpha. Alpha outside
// [0, 1] is invalid. Inputs are not mutated.
func HybridScale(dense []float32, sparse doccrawler.SparseVector, alpha float64) ([]float32, doccrawler.SparseVector, error) {
	if alpha < 0 || alpha > 1 {
		return nil, doccrawler.SparseVector{}, doccrawler.Errorf(doccrawler.EINVALID, "alpha must be between 0 and 1, got %v", alpha)
	}

	scaledDense := make([]float32, len(dense))
	for i, v := range dense {
		scaledDense[i] = v * float32(alpha)
	}

	scaledSparse := doccrawler.SparseVector{
		Indices: append([]uint32(nil), sparse.Indices...),
		Values:  make([]float32, len(sparse.Values)),
	}
	for i, v := range sparse.Values {
		scaledSparse.Values[i] = v * float32(1-alpha)
	}
	return scaledDense, scaledSparse, nil
}

// TranslateFilters expands shorthand metadata filters into vector-store
// operator form: a string becomes $in with a single element, a list
// becomes $in, a bool becomes $eq, nil becomes an existence check, and
// anything else passes through unchanged.
func TranslateFilters(filters map[string]any) map[string]any {
	if len(filters) == 0 {
		return nil
	}
	translated := make(map[string]any, len(filters))
	for key, value := range filters {
		switch v := value.(type) {
		case string:
			translated[key] = map[string]any{"$in": []any{v}}
		case []string:
			vals := make([]any, len(v))
			for i, s := range v {
				vals[i] = s
			}
			translated[key] = map[string]any{"$in": vals}
		case []any:
			translated[key] = map[string]any{"$in": v}
		case bool:
			translated[key] = map[string]any{"$eq": v}
		case nil:
			translated[key] = map[string]any{"$exists": false}
		default:
			translated[key] = value
		}
	}
	return translated
}
