package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.ScratchStore = (*ScratchStore)(nil)

// ScratchStore is a mock implementation of doccrawler.ScratchStore.
// Unset functions are no-ops.
type ScratchStore struct {
	SavePagesFn   func(ctx context.Context, sessionID, target string, pages []*doccrawler.PageRecord) error
	SaveChunksFn  func(ctx context.Context, sessionID string, chunks []*doccrawler.Chunk) error
	SaveVectorsFn func(ctx context.Context, sessionID string, records []*doccrawler.VectorRecord) error
	RemoveFn      func(sessionID string) error
}

func (s *ScratchStore) SavePages(ctx context.Context, sessionID, target string, pages []*doccrawler.PageRecord) error {
	if s.SavePagesFn == nil {
		return nil
	}
	return s.SavePagesFn(ctx, sessionID, target, pages)
}

func (s *ScratchStore) SaveChunks(ctx context.Context, sessionID string, chunks []*doccrawler.Chunk) error {
	if s.SaveChunksFn == nil {
		return nil
	}
	return s.SaveChunksFn(ctx, sessionID, chunks)
}

func (s *ScratchStore) SaveVectors(ctx context.Context, sessionID string, records []*doccrawler.VectorRecord) error {
	if s.SaveVectorsFn == nil {
		return nil
	}
	return s.SaveVectorsFn(ctx, sessionID, records)
}

func (s *ScratchStore) Remove(sessionID string) error {
	if s.RemoveFn == nil {
		return nil
	}
	return s.RemoveFn(sessionID)
}
