// Package fs provides filesystem-backed stores.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Ensure ScratchStore implements doccrawler.ScratchStore at compile time.
var _ doccrawler.ScratchStore = (*ScratchStore)(nil)

// ScratchStore persists session artifacts under a data directory:
//
//	<dir>/<session>/results/<target>.json
//	<dir>/<session>/all_chunks.json
//	<dir>/<session>/embeddings/all_chunks.json
//
// Remove deletes the whole session subtree.
type ScratchStore struct {
	dir string
}

// NewScratchStore creates a ScratchStore rooted at dir.
func NewScratchStore(dir string) *ScratchStore {
	return &ScratchStore{dir: dir}
}

var unsafePathRE = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// safeName keeps session and target names inside the scratch tree.
func safeName(name string) string {
	cleaned := unsafePathRE.ReplaceAllString(name, "_")
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "_"
	}
	return cleaned
}

func (s *ScratchStore) sessionDir(sessionID string) string {
	return filepath.Join(s.dir, safeName(sessionID))
}

// SavePages writes one target's page records.
func (s *ScratchStore) SavePages(ctx context.Context, sessionID, target string, pages []*doccrawler.PageRecord) error {
	path := filepath.Join(s.sessionDir(sessionID), "results", safeName(target)+".json")
	return writeJSON(path, pages)
}

// SaveChunks writes the session's aggregated chunk list.
func (s *ScratchStore) SaveChunks(ctx context.Context, sessionID string, chunks []*doccrawler.Chunk) error {
	path := filepath.Join(s.sessionDir(sessionID), "all_chunks.json")
	return writeJSON(path, chunks)
}

// SaveVectors writes the session's embedded records.
func (s *ScratchStore) SaveVectors(ctx context.Context, sessionID string, records []*doccrawler.VectorRecord) error {
	path := filepath.Join(s.sessionDir(sessionID), "embeddings", "all_chunks.json")
	return writeJSON(path, records)
}

// Remove deletes the session's scratch space.
func (s *ScratchStore) Remove(sessionID string) error {
	return os.RemoveAll(s.sessionDir(sessionID))
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
