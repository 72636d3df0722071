package pinecone

import (
	"testing"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToVector_AcceptsSummaryChunkMetadata(t *testing.T) {
	t.Parallel()

	summary := doccrawler.Chunk{
		Text: "Example is a Go SDK for building examples.",
		Metadata: doccrawler.ChunkMetadata{
			SourceName: "example",
			BaseURL:    "https://docs.example.com",
			PageURLs:   []string{"https://docs.example.com/a", "https://docs.example.com/b"},
			Kind:       "SDK",
			Versions:   []string{"v1", "v2"},
			Languages:  []string{"go", "python"},
		},
	}

	rec := &doccrawler.VectorRecord{
		ID:           "vec-1",
		Values:       []float32{0.1, 0.2},
		SparseValues: doccrawler.SparseVector{Indices: []uint32{7}, Values: []float32{0.5}},
		Metadata:     summary.NormalizedMetadata(),
	}

	vec, err := toVector(rec)
	require.NoError(t, err, "summary metadata must survive the wire encoding")

	m := vec.Metadata.AsMap()
	assert.Equal(t, "Example is a Go SDK for building examples.", m["chunked_data"])
	assert.Equal(t, []any{"https://docs.example.com/a", "https://docs.example.com/b"}, m["href_urls"])
	assert.Equal(t, []any{"go", "python"}, m["supported_languages"])
	assert.Equal(t, "v1, v2", m["versions"])
	assert.Equal(t, "SDK", m["sdk_framework"])
}

func TestToVector_AcceptsPageChunkMetadata(t *testing.T) {
	t.Parallel()

	page := doccrawler.Chunk{
		Text: "Install with go get.",
		Metadata: doccrawler.ChunkMetadata{
			BaseURL:  "https://docs.example.com",
			PageURL:  "https://docs.example.com/install",
			Category: "Getting Started",
			HasCode:  true,
			Version:  "v2",
		},
	}

	rec := &doccrawler.VectorRecord{
		ID:       "vec-2",
		Values:   []float32{0.3},
		Metadata: page.NormalizedMetadata(),
	}

	vec, err := toVector(rec)
	require.NoError(t, err)

	m := vec.Metadata.AsMap()
	assert.Equal(t, "https://docs.example.com/install", m["href"])
	assert.Equal(t, "getting started", m["category"])
	assert.Equal(t, "true", m["has_code_snippet"])
}

func TestToVector_RejectsUnencodableMetadata(t *testing.T) {
	t.Parallel()

	rec := &doccrawler.VectorRecord{
		ID:       "vec-3",
		Values:   []float32{0.1},
		Metadata: map[string]any{"bad": struct{}{}},
	}

	_, err := toVector(rec)
	require.Error(t, err)
	assert.Equal(t, doccrawler.EINVALID, doccrawler.ErrorCode(err))
}
