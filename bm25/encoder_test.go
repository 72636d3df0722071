package bm25_test

import (
	"os"
	"path/filepath"
	"testing"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/bm25"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_Encode_is_deterministic(t *testing.T) {
	t.Parallel()

	e := bm25.New(bm25.DefaultParams())

	first, err := e.Encode("Configure webhooks to receive event notifications.")
	require.NoError(t, err)
	second, err := e.Encode("Configure webhooks to receive event notifications.")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first.Indices)
	for i := 1; i < len(first.Indices); i++ {
		assert.Less(t, first.Indices[i-1], first.Indices[i], "indices must be sorted and unique")
	}
}

func TestEncoder_Encode_empty_text_yields_empty_vector(t *testing.T) {
	t.Parallel()

	e := bm25.New(bm25.DefaultParams())

	for _, text := range []string{"", "   ", "a I ...", "the of and"} {
		v, err := e.Encode(text)
		require.NoError(t, err)
		assert.Empty(t, v.Indices, "text %q", text)
		assert.Empty(t, v.Values, "text %q", text)
	}
}

func TestEncoder_Encode_saturates_repeated_terms(t *testing.T) {
	t.Parallel()

	e := bm25.New(bm25.DefaultParams())

	once, err := e.Encode("webhook")
	require.NoError(t, err)
	many, err := e.Encode("webhook webhook webhook webhook webhook")
	require.NoError(t, err)

	require.Len(t, once.Values, 1)
	require.Len(t, many.Values, 1)
	assert.Equal(t, once.Indices, many.Indices)
	assert.Greater(t, many.Values[0], once.Values[0], "higher term frequency weighs more")
	assert.Less(t, many.Values[0], once.Values[0]*5, "growth saturates below linear")
}

func TestEncoder_EncodeQuery_weights_distinct_terms_uniformly(t *testing.T) {
	t.Parallel()

	e := bm25.New(bm25.DefaultParams())

	v, err := e.EncodeQuery("webhook webhook delivery retry")
	require.NoError(t, err)

	require.Len(t, v.Indices, 3, "repeated terms collapse to one entry")
	for _, w := range v.Values {
		assert.InDelta(t, 1.0/3.0, float64(w), 1e-6)
	}

	empty, err := e.EncodeQuery("")
	require.NoError(t, err)
	assert.Empty(t, empty.Indices)
}

func TestEncoder_query_and_document_share_term_indices(t *testing.T) {
	t.Parallel()

	e := bm25.New(bm25.DefaultParams())

	doc, err := e.Encode("webhook")
	require.NoError(t, err)
	q, err := e.EncodeQuery("webhook")
	require.NoError(t, err)

	assert.Equal(t, doc.Indices, q.Indices)
}

func TestLoad_freezes_params_on_first_use(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := bm25.Load(dir)
	require.NoError(t, err)

	// Overwrite the frozen file with different parameters; a reload must
	// pick them up rather than reverting to defaults.
	path := filepath.Join(dir, "bm25_params.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k1": 2.0, "b": 0.5, "avg_doc_len": 100}`), 0644))

	second, err := bm25.Load(dir)
	require.NoError(t, err)

	v1, err := first.Encode("webhook delivery")
	require.NoError(t, err)
	v2, err := second.Encode("webhook delivery")
	require.NoError(t, err)
	assert.Equal(t, v1.Indices, v2.Indices)
	assert.NotEqual(t, v1.Values, v2.Values, "reloaded parameters change the weighting")
}

func TestLoad_rejects_corrupt_params_file(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bm25_params.json"), []byte("{not json"), 0644))

	_, err := bm25.Load(dir)
	require.Error(t, err)
	assert.Equal(t, doccrawler.EINTERNAL, doccrawler.ErrorCode(err))
}
