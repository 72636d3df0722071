// Package embed turns chunks into hybrid vector records carrying a dense
// embedding, a sparse encoding and normalized metadata.
package embed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline embeds chunks concurrently. A chunk whose dense embedding
// fails is dropped; a failed sparse encoding degrades the chunk to
// dense-only rather than dropping it.
type Pipeline struct {
	Dense   doccrawler.DenseEmbedder
	Sparse  doccrawler.SparseEncoder
	Errors  doccrawler.ErrorSink
	Scratch doccrawler.ScratchStore
	Logger  *slog.Logger

	Concurrency int
}

const defaultEmbedConcurrency = 40

// Embed produces one vector record per surviving chunk, each with a
// fresh UUID and the chunk's normalized metadata. The records are
// persisted to scratch before being returned.
func (p *Pipeline) Embed(ctx context.Context, sessionID string, chunks []*doccrawler.Chunk) ([]*doccrawler.VectorRecord, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = defaultEmbedConcurrency
	}

	var (
		mu      sync.Mutex
		records []*doccrawler.VectorRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, chunk := range chunks {
		g.Go(func() error {
			values, err := p.Dense.Embed(gctx, chunk.Text)
			if err != nil {
				p.recordFailure(gctx, sessionID, fmt.Sprintf("dense embedding failed, chunk dropped: %v", err))
				return nil
			}

			var sparse doccrawler.SparseVector
			if p.Sparse != nil {
				sparse, err = p.Sparse.Encode(chunk.Text)
				if err != nil {
					p.recordFailure(gctx, sessionID, fmt.Sprintf("sparse encoding failed, chunk kept dense-only: %v", err))
					sparse = doccrawler.SparseVector{}
				}
			}

			rec := &doccrawler.VectorRecord{
				ID:           uuid.NewString(),
				Values:       values,
				SparseValues: sparse,
				Metadata:     chunk.NormalizedMetadata(),
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.Scratch != nil {
		if err := p.Scratch.SaveVectors(ctx, sessionID, records); err != nil {
			p.recordFailure(ctx, sessionID, fmt.Sprintf("saving vectors to scratch: %v", err))
		}
	}
	return records, nil
}

func (p *Pipeline) recordFailure(ctx context.Context, sessionID, message string) {
	p.logger().Warn("embedding", "error", message)
	if p.Errors == nil {
		return
	}
	_ = p.Errors.Record(ctx, sessionID, message)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
