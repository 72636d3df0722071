package doccrawler

import "strings"

// Chunk represents a semantically coherent section of documentation
// produced by the chunking pipeline, immutable once created.
type Chunk struct {
	Text     string        `json:"chunked_data"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata carries structured context for a chunk. Page chunks set
// PageURL and Version; summary chunks set PageURLs, Languages and Versions.
type ChunkMetadata struct {
	SourceName string   `json:"sdk_framework_name,omitempty"`
	BaseURL    string   `json:"base_url"`
	PageURL    string   `json:"href,omitempty"`
	PageURLs   []string `json:"href_urls,omitempty"`
	Kind       string   `json:"sdk_framework,omitempty"` // "SDK" or "Framework"
	Category   string   `json:"category,omitempty"`
	HasCode    bool     `json:"has_code_snippet,omitempty"`
	Version    string   `json:"version,omitempty"`
	Versions   []string `json:"versions,omitempty"`
	Languages  []string `json:"supported_languages,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if c.Metadata.BaseURL == "" {
		return Errorf(EINVALID, "chunk base URL required")
	}
	if k := c.Metadata.Kind; k != "" && k != "SDK" && k != "Framework" {
		return Errorf(EINVALID, "chunk kind must be SDK or Framework, got %q", k)
	}
	return nil
}

// emptyMarkers are values treated as absent during normalization.
func isEmptyMarker(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null":
		return true
	}
	return false
}

// NormalizedMetadata flattens the chunk's metadata into the shape stored
// alongside its vector. It is a single normalization pass: empty or
// null-like optional fields are dropped, the category is lowercased, the
// code-presence flag serializes only when set, and version lists collapse
// to a single string. The chunk text itself is stored under "chunked_data"
// so retrieval can surface it without a second lookup.
func (c *Chunk) NormalizedMetadata() map[string]any {
	m := map[string]any{
		"chunked_data": c.Text,
		"base_url":     c.Metadata.BaseURL,
	}
	if c.Metadata.SourceName != "" {
		m["sdk_framework_name"] = c.Metadata.SourceName
	}
	if c.Metadata.PageURL != "" {
		m["href"] = c.Metadata.PageURL
	}
	if len(c.Metadata.PageURLs) > 0 {
		m["href_urls"] = anyStrings(c.Metadata.PageURLs)
	}
	if c.Metadata.Kind != "" {
		m["sdk_framework"] = c.Metadata.Kind
	}
	if !isEmptyMarker(c.Metadata.Category) {
		m["category"] = strings.ToLower(c.Metadata.Category)
	}
	if c.Metadata.HasCode {
		m["has_code_snippet"] = "true"
	}
	if !isEmptyMarker(c.Metadata.Version) {
		m["version"] = c.Metadata.Version
	}
	if len(c.Metadata.Versions) > 0 {
		m["versions"] = strings.Join(c.Metadata.Versions, ", ")
	}
	if len(c.Metadata.Languages) > 0 {
		m["supported_languages"] = anyStrings(c.Metadata.Languages)
	}
	return m
}

// anyStrings widens a string list to the JSON-like element type the
// vector store's wire encoding accepts.
func anyStrings(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// SparseVector is a lexical (BM25-style) vector of term indices and weights.
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// VectorRecord pairs a chunk's dense and sparse embeddings with its
// normalized metadata, ready for upsert into the remote index.
type VectorRecord struct {
	ID           string         `json:"id"`
	Values       []float32      `json:"values"`
	SparseValues SparseVector   `json:"sparse_values"`
	Metadata     map[string]any `json:"metadata"`
}
