package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Ensure JinaReranker implements doccrawler.Reranker at compile time.
var _ doccrawler.Reranker = (*JinaReranker)(nil)

const (
	defaultJinaURL     = "https://api.jina.ai/v1/rerank"
	defaultRerankModel = "jina-reranker-v2-base-multilingual"
)

// JinaReranker implements reranking via the Jina AI rerank API.
type JinaReranker struct {
	client *http.Client
	apiKey string

	// URL and Model override the Jina endpoint and model; zero values use
	// the production defaults.
	URL   string
	Model string
}

// NewJinaReranker creates a reranker authenticated with the given API key.
func NewJinaReranker(apiKey string) *JinaReranker {
	return &JinaReranker{
		client: &http.Client{Timeout: 30 * time.Second},
		apiKey: apiKey,
	}
}

type jinaRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	TopN      int      `json:"top_n"`
	Documents []string `json:"documents"`
}

type jinaResponse struct {
	Results []struct {
		Index    int `json:"index"`
		Document struct {
			Text string `json:"text"`
		} `json:"document"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank scores documents against the query and returns the topN best,
// highest relevance first.
func (r *JinaReranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]doccrawler.RankedDocument, error) {
	if len(documents) == 0 {
		return nil, nil
	}
	if topN <= 0 || topN > len(documents) {
		topN = len(documents)
	}

	endpoint := r.URL
	if endpoint == "" {
		endpoint = defaultJinaURL
	}
	model := r.Model
	if model == "" {
		model = defaultRerankModel
	}

	body, err := json.Marshal(jinaRequest{
		Model:     model,
		Query:     query,
		TopN:      topN,
		Documents: documents,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "rerank request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "rerank request returned %d: %s", resp.StatusCode, payload)
	}

	var parsed jinaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding rerank response: %w", err)
	}

	ranked := make([]doccrawler.RankedDocument, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		text := result.Document.Text
		if text == "" && result.Index >= 0 && result.Index < len(documents) {
			text = documents[result.Index]
		}
		ranked = append(ranked, doccrawler.RankedDocument{
			Index: result.Index,
			Text:  text,
			Score: result.RelevanceScore,
		})
	}
	return ranked, nil
}
