package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of doccrawler.VectorStore.
type VectorStore struct {
	ListIndexesFn   func(ctx context.Context) (map[string]string, error)
	CreateIndexFn   func(ctx context.Context, name string, dimension int, metric string) error
	DescribeIndexFn func(ctx context.Context, name string) (*doccrawler.Index, error)
	UpsertFn        func(ctx context.Context, host, namespace string, records []*doccrawler.VectorRecord) (int, error)
	QueryFn         func(ctx context.Context, host string, q *doccrawler.VectorQuery) ([]doccrawler.QueryMatch, error)
}

func (s *VectorStore) ListIndexes(ctx context.Context) (map[string]string, error) {
	return s.ListIndexesFn(ctx)
}

func (s *VectorStore) CreateIndex(ctx context.Context, name string, dimension int, metric string) error {
	return s.CreateIndexFn(ctx, name, dimension, metric)
}

func (s *VectorStore) DescribeIndex(ctx context.Context, name string) (*doccrawler.Index, error) {
	return s.DescribeIndexFn(ctx, name)
}

func (s *VectorStore) Upsert(ctx context.Context, host, namespace string, records []*doccrawler.VectorRecord) (int, error) {
	return s.UpsertFn(ctx, host, namespace, records)
}

func (s *VectorStore) Query(ctx context.Context, host string, q *doccrawler.VectorQuery) ([]doccrawler.QueryMatch, error) {
	return s.QueryFn(ctx, host, q)
}
