package ingest_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/chunk"
	"github.com/Krish-Goyani/DocCrawler/crawl"
	"github.com/Krish-Goyani/DocCrawler/embed"
	"github.com/Krish-Goyani/DocCrawler/index"
	"github.com/Krish-Goyani/DocCrawler/ingest"
	"github.com/Krish-Goyani/DocCrawler/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chunkResponse = "```json\n[{\"chunked_data\": \"chunk text\", \"metadata\": {\"base_url\": \"https://docs.example.com\"}}]\n```"
const summaryResponse = "```json\n[{\"chunked_data\": \"summary text\", \"metadata\": {\"base_url\": \"https://docs.example.com\", \"category\": \"summary\"}}]\n```"

// testService wires a full pipeline over mocks: a one-page sitemap crawl,
// completion-backed chunking, embedding and an already-provisioned index.
func testService(t *testing.T, fetcher doccrawler.Fetcher) *ingest.Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := &mock.Extractor{
		ExtractFn: func(html string) (*doccrawler.ExtractResult, error) {
			return &doccrawler.ExtractResult{Title: "Example Docs", ContentHTML: "<p>content</p>"}, nil
		},
	}
	completer := &mock.Completer{
		CompleteFn: func(ctx context.Context, prompt string, temperature float32) (*doccrawler.Completion, error) {
			switch {
			case strings.Contains(prompt, "best describe the product"):
				return &doccrawler.Completion{Text: `["https://docs.example.com/a"]`}, nil
			case strings.Contains(prompt, "concise summary"):
				return &doccrawler.Completion{Text: summaryResponse}, nil
			default:
				return &doccrawler.Completion{Text: chunkResponse}, nil
			}
		},
	}
	store := &mock.VectorStore{
		ListIndexesFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"docs": "docs-host"}, nil
		},
		UpsertFn: func(ctx context.Context, host, namespace string, records []*doccrawler.VectorRecord) (int, error) {
			return len(records), nil
		},
	}

	return &ingest.Service{
		Fetcher:   fetcher,
		Extractor: extractor,
		Crawler: &crawl.Crawler{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *doccrawler.URLFilter) ([]string, error) {
					return []string{"https://docs.example.com/a", "https://docs.example.com/b"}, nil
				},
			},
			Fetcher: fetcher,
			Extractor: extractor,
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) { return "# content", nil },
			},
			Links:       &mock.LinkExtractor{ExtractLinksFn: func(html, baseURL string) ([]doccrawler.Link, error) { return nil, nil }},
			RetryDelays: []time.Duration{},
			Logger:      logger,
		},
		Chunks: &chunk.Pipeline{Completer: completer, Logger: logger},
		Embeds: &embed.Pipeline{
			Dense: &mock.DenseEmbedder{
				EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{0.1, 0.2}, nil
				},
			},
			Logger: logger,
		},
		Index:  &index.Manager{Store: store, IndexName: "docs", Logger: logger},
		Logger: logger,
	}
}

func okFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html><head><title>Example Docs</title></head><body>hi</body></html>", nil
		},
	}
}

func TestService_Ingest_runs_the_full_pipeline(t *testing.T) {
	t.Parallel()

	s := testService(t, okFetcher())

	result, err := s.Ingest(context.Background(), "session-1", []string{"https://docs.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "session-1", result.SessionID)
	assert.Equal(t, 1, result.Targets)
	assert.Equal(t, 2, result.Pages, "both sitemap URLs are crawled")
	assert.Equal(t, 3, result.Chunks, "one chunk per page plus the target summary")
	assert.Equal(t, 3, result.Upserted)
}

func TestService_Ingest_validates_input(t *testing.T) {
	t.Parallel()

	s := testService(t, okFetcher())

	_, err := s.Ingest(context.Background(), "", []string{"https://docs.example.com"})
	require.Error(t, err)
	assert.Equal(t, doccrawler.EINVALID, doccrawler.ErrorCode(err))

	_, err = s.Ingest(context.Background(), "session-1", nil)
	require.Error(t, err)
	assert.Equal(t, doccrawler.EINVALID, doccrawler.ErrorCode(err))
}

func TestService_Ingest_errors_when_nothing_could_be_crawled(t *testing.T) {
	t.Parallel()

	s := testService(t, &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", doccrawler.Errorf(doccrawler.EUNAVAILABLE, "site is down")
		},
	})

	_, err := s.Ingest(context.Background(), "session-1", []string{"https://docs.example.com"})
	require.Error(t, err)
	assert.Equal(t, doccrawler.ENOTFOUND, doccrawler.ErrorCode(err))
}

func TestService_Ingest_persists_pages_per_target(t *testing.T) {
	t.Parallel()

	var savedTargets []string
	s := testService(t, okFetcher())
	s.Scratch = &mock.ScratchStore{
		SavePagesFn: func(ctx context.Context, sessionID, target string, pages []*doccrawler.PageRecord) error {
			savedTargets = append(savedTargets, target)
			assert.Equal(t, "session-1", sessionID)
			assert.Len(t, pages, 2)
			return nil
		},
	}

	_, err := s.Ingest(context.Background(), "session-1", []string{"https://docs.example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"example_docs"}, savedTargets, "target slug comes from the seed page title")
}
