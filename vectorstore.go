package doccrawler

import "context"

// Index describes a remote vector index.
type Index struct {
	Name      string
	Host      string
	Dimension int
	Ready     bool
}

// VectorQuery is a hybrid similarity query against a remote index.
type VectorQuery struct {
	Namespace       string
	Vector          []float32
	SparseVector    SparseVector
	TopK            int
	Filter          map[string]any
	IncludeMetadata bool
}

// QueryMatch is one result of a vector query.
type QueryMatch struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// VectorStore is the remote vector-index capability.
type VectorStore interface {
	// ListIndexes returns a name -> host mapping of existing indexes.
	ListIndexes(ctx context.Context) (map[string]string, error)

	// CreateIndex provisions a new index. Creation is asynchronous on the
	// remote side; use DescribeIndex to observe readiness.
	CreateIndex(ctx context.Context, name string, dimension int, metric string) error

	// DescribeIndex returns the current state of an index.
	// Returns ENOTFOUND if the index does not exist.
	DescribeIndex(ctx context.Context, name string) (*Index, error)

	// Upsert writes records into the index served at host and returns the
	// number of vectors the remote side reports as upserted.
	Upsert(ctx context.Context, host, namespace string, records []*VectorRecord) (int, error)

	// Query issues a hybrid similarity query against the index at host.
	Query(ctx context.Context, host string, q *VectorQuery) ([]QueryMatch, error)
}
