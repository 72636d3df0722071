package crawl_test

import (
	"context"
	"testing"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/crawl"
	"github.com/Krish-Goyani/DocCrawler/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snippetState(t *testing.T) *crawl.State {
	t.Helper()
	state := crawl.NewState("session-1", []doccrawler.CrawlTarget{
		{Name: "example", URL: "https://docs.example.com"},
	}, 20)
	state.AppendPage("example", &doccrawler.PageRecord{
		URL:     "https://docs.example.com/install",
		Content: "# Install\n\n```python\npip install sdk\n```\n",
	})
	state.AppendPage("example", &doccrawler.PageRecord{
		URL:     "https://docs.example.com/plain",
		Content: "# Plain page\n",
	})
	return state
}

func TestSnippetCrawler_Run_merges_recovered_snippets(t *testing.T) {
	t.Parallel()

	state := snippetState(t)
	sc := &crawl.SnippetCrawler{
		Extractor: &mock.SnippetExtractor{
			ExtractHiddenFn: func(ctx context.Context, url string) (map[string][]string, error) {
				if url == "https://docs.example.com/install" {
					return map[string][]string{
						"go": {"go get example.com/sdk"},
					}, nil
				}
				return nil, nil
			},
		},
	}

	require.NoError(t, sc.Run(context.Background(), state))

	pages := state.Pages("example")
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0].Content, "go get example.com/sdk")
	assert.Equal(t, "# Plain page\n", pages[1].Content, "pages without snippets stay untouched")
}

func TestSnippetCrawler_Run_records_extraction_failures_and_continues(t *testing.T) {
	t.Parallel()

	state := snippetState(t)
	sink := &mock.ErrorSink{}
	sc := &crawl.SnippetCrawler{
		Extractor: &mock.SnippetExtractor{
			ExtractHiddenFn: func(ctx context.Context, url string) (map[string][]string, error) {
				if url == "https://docs.example.com/install" {
					return nil, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "browser crashed")
				}
				return map[string][]string{"bash": {"echo hi"}}, nil
			},
		},
		Errors: sink,
	}

	require.NoError(t, sc.Run(context.Background(), state), "per-page failures must not abort the pass")

	pages := state.Pages("example")
	assert.Contains(t, pages[1].Content, "echo hi")
	require.Len(t, sink.Messages(), 1)
	assert.Contains(t, sink.Messages()[0], "https://docs.example.com/install")
}
