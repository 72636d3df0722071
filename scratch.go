package doccrawler

import "context"

// ScratchStore persists intermediate session artifacts: one page-record
// file per crawl target, one aggregated chunk file, and one enriched
// (embedded) chunk file. Everything under a session is removed after a
// successful upsert.
type ScratchStore interface {
	SavePages(ctx context.Context, sessionID, target string, pages []*PageRecord) error
	SaveChunks(ctx context.Context, sessionID string, chunks []*Chunk) error
	SaveVectors(ctx context.Context, sessionID string, records []*VectorRecord) error

	// Remove deletes the session's scratch space.
	Remove(sessionID string) error
}
