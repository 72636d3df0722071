package query_test

import (
	"context"
	"fmt"
	"testing"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/mock"
	"github.com/Krish-Goyani/DocCrawler/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHybridScale(t *testing.T) {
	t.Parallel()

	dense := []float32{1, 2}
	sparse := doccrawler.SparseVector{Indices: []uint32{3, 9}, Values: []float32{4, 8}}

	t.Run("alpha weights dense and sparse inversely", func(t *testing.T) {
		t.Parallel()

		d, s, err := query.HybridScale(dense, sparse, 0.75)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.75, 1.5}, d)
		assert.Equal(t, []uint32{3, 9}, s.Indices)
		assert.InDelta(t, 1.0, float64(s.Values[0]), 1e-6)
		assert.InDelta(t, 2.0, float64(s.Values[1]), 1e-6)
	})

	t.Run("alpha one keeps only dense signal", func(t *testing.T) {
		t.Parallel()

		d, s, err := query.HybridScale(dense, sparse, 1)
		require.NoError(t, err)
		assert.Equal(t, dense, d)
		assert.Equal(t, []float32{0, 0}, s.Values)
	})

	t.Run("alpha zero keeps only sparse signal", func(t *testing.T) {
		t.Parallel()

		d, s, err := query.HybridScale(dense, sparse, 0)
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0}, d)
		assert.Equal(t, sparse.Values, s.Values)
	})

	t.Run("alpha outside the unit interval is invalid", func(t *testing.T) {
		t.Parallel()

		for _, alpha := range []float64{-0.1, 1.1} {
			_, _, err := query.HybridScale(dense, sparse, alpha)
			require.Error(t, err)
			assert.Equal(t, doccrawler.EINVALID, doccrawler.ErrorCode(err))
		}
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		t.Parallel()

		_, _, err := query.HybridScale(dense, sparse, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, dense)
		assert.Equal(t, []float32{4, 8}, sparse.Values)
	})
}

func TestTranslateFilters(t *testing.T) {
	t.Parallel()

	got := query.TranslateFilters(map[string]any{
		"category":         "webhooks",
		"supported_languages": []string{"python", "go"},
		"versions":         []any{"v1", "v2"},
		"has_code_snippet": true,
		"version":          nil,
		"score":            map[string]any{"$gte": 3},
	})

	assert.Equal(t, map[string]any{"$in": []any{"webhooks"}}, got["category"])
	assert.Equal(t, map[string]any{"$in": []any{"python", "go"}}, got["supported_languages"])
	assert.Equal(t, map[string]any{"$in": []any{"v1", "v2"}}, got["versions"])
	assert.Equal(t, map[string]any{"$eq": true}, got["has_code_snippet"])
	assert.Equal(t, map[string]any{"$exists": false}, got["version"])
	assert.Equal(t, map[string]any{"$gte": 3}, got["score"], "operator maps pass through unchanged")

	assert.Nil(t, query.TranslateFilters(nil))
	assert.Nil(t, query.TranslateFilters(map[string]any{}))
}

func testEngine(store *mock.VectorStore, reranker doccrawler.Reranker) *query.Engine {
	return &query.Engine{
		Dense: &mock.DenseEmbedder{
			EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
				return []float32{1, 0}, nil
			},
		},
		Sparse: &mock.SparseEncoder{
			EncodeQueryFn: func(text string) (doccrawler.SparseVector, error) {
				return doccrawler.SparseVector{Indices: []uint32{1}, Values: []float32{1}}, nil
			},
		},
		Store:     store,
		Reranker:  reranker,
		IndexName: "docs",
		Namespace: "default",
	}
}

func TestEngine_Query_full_path(t *testing.T) {
	t.Parallel()

	store := &mock.VectorStore{
		ListIndexesFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"docs": "docs-host"}, nil
		},
		QueryFn: func(ctx context.Context, host string, q *doccrawler.VectorQuery) ([]doccrawler.QueryMatch, error) {
			assert.Equal(t, "docs-host", host)
			assert.Equal(t, "default", q.Namespace)
			assert.Equal(t, 20, q.TopK)
			assert.True(t, q.IncludeMetadata)
			assert.Equal(t, map[string]any{"$in": []any{"webhooks"}}, q.Filter["category"])

			matches := make([]doccrawler.QueryMatch, 20)
			for i := range matches {
				matches[i] = doccrawler.QueryMatch{
					ID:       fmt.Sprintf("vec-%d", i),
					Score:    float32(20 - i),
					Metadata: map[string]any{"chunked_data": fmt.Sprintf("doc %d", i)},
				}
			}
			return matches, nil
		},
	}
	reranker := &mock.Reranker{
		RerankFn: func(ctx context.Context, q string, documents []string, topN int) ([]doccrawler.RankedDocument, error) {
			assert.Equal(t, "how do webhooks work", q)
			assert.Len(t, documents, 20)
			assert.Equal(t, 5, topN)
			ranked := make([]doccrawler.RankedDocument, topN)
			for i := range ranked {
				ranked[i] = doccrawler.RankedDocument{Index: i, Text: documents[i], Score: 0.9 - float64(i)*0.1}
			}
			return ranked, nil
		},
	}

	e := testEngine(store, reranker)
	results, err := e.Query(context.Background(), "how do webhooks work",
		map[string]any{"category": "webhooks"}, 0.5, 20, 5)
	require.NoError(t, err)

	require.Len(t, results, 5)
	assert.Equal(t, "doc 0", results[0].Text)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)
}

func TestEngine_Query_validates_input(t *testing.T) {
	t.Parallel()

	e := testEngine(&mock.VectorStore{}, nil)

	_, err := e.Query(context.Background(), "", nil, 0.5, 20, 5)
	require.Error(t, err)
	assert.Equal(t, doccrawler.EINVALID, doccrawler.ErrorCode(err))

	_, err = e.Query(context.Background(), "query", nil, 2, 20, 5)
	require.Error(t, err)
	assert.Equal(t, doccrawler.EINVALID, doccrawler.ErrorCode(err))
}

func TestEngine_Query_errors_when_index_missing(t *testing.T) {
	t.Parallel()

	store := &mock.VectorStore{
		ListIndexesFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"other": "other-host"}, nil
		},
	}
	e := testEngine(store, nil)

	_, err := e.Query(context.Background(), "anything", nil, 0.5, 20, 5)
	require.Error(t, err)
	assert.Equal(t, doccrawler.ENOTFOUND, doccrawler.ErrorCode(err))
}

func TestEngine_Query_without_reranker_returns_retrieval_order(t *testing.T) {
	t.Parallel()

	store := &mock.VectorStore{
		ListIndexesFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"docs": "docs-host"}, nil
		},
		QueryFn: func(ctx context.Context, host string, q *doccrawler.VectorQuery) ([]doccrawler.QueryMatch, error) {
			return []doccrawler.QueryMatch{
				{ID: "a", Metadata: map[string]any{"chunked_data": "first"}},
				{ID: "b", Metadata: map[string]any{"chunked_data": "second"}},
				{ID: "c", Metadata: map[string]any{}}, // no text, skipped
			}, nil
		},
	}
	e := testEngine(store, nil)

	results, err := e.Query(context.Background(), "q", nil, 0.5, 10, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Text)
	assert.Equal(t, "second", results[1].Text)
}
