package slog

import (
	"context"
	"log/slog"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Ensure LoggingVectorStore implements doccrawler.VectorStore.
var _ doccrawler.VectorStore = (*LoggingVectorStore)(nil)

// LoggingVectorStore wraps a VectorStore with debug logging.
type LoggingVectorStore struct {
	next   doccrawler.VectorStore
	logger *slog.Logger
}

// NewLoggingVectorStore creates a new LoggingVectorStore.
func NewLoggingVectorStore(next doccrawler.VectorStore, logger *slog.Logger) *LoggingVectorStore {
	return &LoggingVectorStore{next: next, logger: logger}
}

// ListIndexes delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) ListIndexes(ctx context.Context) (hosts map[string]string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list indexes",
			"count", len(hosts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListIndexes(ctx)
}

// CreateIndex delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) CreateIndex(ctx context.Context, name string, dimension int, metric string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create index",
			"name", name,
			"dimension", dimension,
			"metric", metric,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateIndex(ctx, name, dimension, metric)
}

// DescribeIndex delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) DescribeIndex(ctx context.Context, name string) (index *doccrawler.Index, err error) {
	defer func(begin time.Time) {
		ready := false
		if index != nil {
			ready = index.Ready
		}
		s.logger.Debug("describe index",
			"name", name,
			"ready", ready,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DescribeIndex(ctx, name)
}

// Upsert delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) Upsert(ctx context.Context, host, namespace string, records []*doccrawler.VectorRecord) (count int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("upsert vectors",
			"namespace", namespace,
			"records", len(records),
			"upserted", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upsert(ctx, host, namespace, records)
}

// Query delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) Query(ctx context.Context, host string, q *doccrawler.VectorQuery) (matches []doccrawler.QueryMatch, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("query vectors",
			"namespace", q.Namespace,
			"top_k", q.TopK,
			"matches", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Query(ctx, host, q)
}
