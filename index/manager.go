// Package index provisions the vector index and upserts embedded records
// into it.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"golang.org/x/sync/errgroup"
)

// Manager owns index provisioning and batched upserts. Provisioning is
// idempotent: an existing index is reused, a missing one is created and
// polled until ready.
type Manager struct {
	Store   doccrawler.VectorStore
	Scratch doccrawler.ScratchStore
	Errors  doccrawler.ErrorSink
	Logger  *slog.Logger

	IndexName string
	Namespace string

	// BatchSize is the number of records per upsert call; defaults to 100.
	BatchSize int
	// ReadinessAttempts bounds post-create readiness polling; defaults to 3.
	ReadinessAttempts int
	// ReadinessDelay is the wait between readiness polls; defaults to 5s.
	ReadinessDelay time.Duration
}

const (
	defaultBatchSize         = 100
	defaultReadinessAttempts = 3
	defaultReadinessDelay    = 5 * time.Second
	indexMetric              = "dotproduct"
)

// ProvisionAndUpsert ensures the index exists and is ready, upserts all
// records in concurrent batches, and removes the session's scratch space
// on success. Any batch failure is fatal for the whole operation. The
// returned count is the number of upserted vectors.
func (m *Manager) ProvisionAndUpsert(ctx context.Context, sessionID string, records []*doccrawler.VectorRecord) (int, error) {
	if len(records) == 0 {
		return 0, doccrawler.Errorf(doccrawler.EINVALID, "no vector records to upsert")
	}

	host, err := m.provision(ctx, len(records[0].Values))
	if err != nil {
		return 0, err
	}

	batchSize := m.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		g.Go(func() error {
			n, err := m.Store.Upsert(gctx, host, m.Namespace, batch)
			if err != nil {
				return fmt.Errorf("upserting batch of %d: %w", len(batch), err)
			}
			total.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	m.logger().Info("upsert complete", "index", m.IndexName, "vectors", total.Load())

	if m.Scratch != nil {
		if err := m.Scratch.Remove(sessionID); err != nil {
			m.logger().Warn("scratch cleanup failed", "session", sessionID, "error", err)
			if m.Errors != nil {
				_ = m.Errors.Record(ctx, sessionID, fmt.Sprintf("scratch cleanup failed: %v", err))
			}
		}
	}
	return int(total.Load()), nil
}

// provision returns the host of the target index, creating it first when
// absent. A created index must report ready within the polling bound.
func (m *Manager) provision(ctx context.Context, dimension int) (string, error) {
	hosts, err := m.Store.ListIndexes(ctx)
	if err != nil {
		return "", fmt.Errorf("listing indexes: %w", err)
	}
	if host, ok := hosts[m.IndexName]; ok {
		return host, nil
	}

	m.logger().Info("creating index", "name", m.IndexName, "dimension", dimension)
	if err := m.Store.CreateIndex(ctx, m.IndexName, dimension, indexMetric); err != nil {
		return "", fmt.Errorf("creating index %q: %w", m.IndexName, err)
	}

	attempts := m.ReadinessAttempts
	if attempts <= 0 {
		attempts = defaultReadinessAttempts
	}
	delay := m.ReadinessDelay
	if delay <= 0 {
		delay = defaultReadinessDelay
	}

	for i := 0; i < attempts; i++ {
		desc, err := m.Store.DescribeIndex(ctx, m.IndexName)
		if err == nil && desc.Ready {
			return desc.Host, nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", doccrawler.Errorf(doccrawler.EUNAVAILABLE, "index %q not ready after %d attempts", m.IndexName, attempts)
}

func (m *Manager) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
