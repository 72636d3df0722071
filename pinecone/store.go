// Package pinecone implements the vector store on Pinecone serverless
// indexes.
package pinecone

import (
	"context"
	"fmt"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// Ensure Store implements doccrawler.VectorStore at compile time.
var _ doccrawler.VectorStore = (*Store)(nil)

// Store implements doccrawler.VectorStore using the Pinecone API.
// Serverless indexes are created on AWS us-east-1.
type Store struct {
	client *pinecone.Client

	Cloud  pinecone.Cloud
	Region string
}

// NewStore creates a Store authenticated with the given API key.
func NewStore(apiKey string) (*Store, error) {
	if apiKey == "" {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "pinecone API key required")
	}
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}
	return &Store{
		client: client,
		Cloud:  pinecone.Aws,
		Region: "us-east-1",
	}, nil
}

// ListIndexes returns the hosts of all indexes keyed by index name.
func (s *Store) ListIndexes(ctx context.Context) (map[string]string, error) {
	indexes, err := s.client.ListIndexes(ctx)
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "listing indexes: %v", err)
	}
	hosts := make(map[string]string, len(indexes))
	for _, idx := range indexes {
		hosts[idx.Name] = idx.Host
	}
	return hosts, nil
}

// CreateIndex creates a serverless index with the given dimension and
// similarity metric.
func (s *Store) CreateIndex(ctx context.Context, name string, dimension int, metric string) error {
	dim := int32(dimension)
	idxMetric := indexMetric(metric)
	_, err := s.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      name,
		Dimension: &dim,
		Metric:    &idxMetric,
		Cloud:     s.Cloud,
		Region:    s.Region,
	})
	if err != nil {
		return doccrawler.Errorf(doccrawler.EUNAVAILABLE, "creating index %q: %v", name, err)
	}
	return nil
}

// DescribeIndex reports the index's host and readiness.
func (s *Store) DescribeIndex(ctx context.Context, name string) (*doccrawler.Index, error) {
	idx, err := s.client.DescribeIndex(ctx, name)
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.ENOTFOUND, "describing index %q: %v", name, err)
	}
	var dimension int
	if idx.Dimension != nil {
		dimension = int(*idx.Dimension)
	}
	return &doccrawler.Index{
		Name:      idx.Name,
		Host:      idx.Host,
		Dimension: dimension,
		Ready:     idx.Status != nil && idx.Status.Ready,
	}, nil
}

// Upsert writes one batch of records into the namespace and returns the
// number of upserted vectors. The batch succeeds or fails as a whole.
func (s *Store) Upsert(ctx context.Context, host, namespace string, records []*doccrawler.VectorRecord) (int, error) {
	conn, err := s.connect(host, namespace)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	vectors := make([]*pinecone.Vector, 0, len(records))
	for _, rec := range records {
		vec, err := toVector(rec)
		if err != nil {
			return 0, err
		}
		vectors = append(vectors, vec)
	}

	count, err := conn.UpsertVectors(ctx, vectors)
	if err != nil {
		return 0, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "upserting %d vectors: %v", len(vectors), err)
	}
	return int(count), nil
}

// Query runs a hybrid similarity search and returns scored matches.
func (s *Store) Query(ctx context.Context, host string, q *doccrawler.VectorQuery) ([]doccrawler.QueryMatch, error) {
	conn, err := s.connect(host, q.Namespace)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := &pinecone.QueryByVectorValuesRequest{
		Vector:          q.Vector,
		TopK:            uint32(q.TopK),
		IncludeMetadata: q.IncludeMetadata,
	}
	if len(q.SparseVector.Indices) > 0 {
		req.SparseValues = &pinecone.SparseValues{
			Indices: q.SparseVector.Indices,
			Values:  q.SparseVector.Values,
		}
	}
	if len(q.Filter) > 0 {
		filter, err := structpb.NewStruct(q.Filter)
		if err != nil {
			return nil, doccrawler.Errorf(doccrawler.EINVALID, "invalid metadata filter: %v", err)
		}
		req.MetadataFilter = filter
	}

	resp, err := conn.QueryByVectorValues(ctx, req)
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "querying index: %v", err)
	}

	matches := make([]doccrawler.QueryMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if m == nil || m.Vector == nil {
			continue
		}
		match := doccrawler.QueryMatch{
			ID:    string(m.Vector.Id),
			Score: m.Score,
		}
		if m.Vector.Metadata != nil {
			match.Metadata = m.Vector.Metadata.AsMap()
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// connect opens an index connection bound to a namespace.
func (s *Store) connect(host, namespace string) (*pinecone.IndexConnection, error) {
	conn, err := s.client.Index(pinecone.NewIndexConnParams{Host: host, Namespace: namespace})
	if err != nil {
		return nil, doccrawler.Errorf(doccrawler.EUNAVAILABLE, "connecting to index host %s: %v", host, err)
	}
	return conn, nil
}

// toVector converts a record to the wire representation.
func toVector(rec *doccrawler.VectorRecord) (*pinecone.Vector, error) {
	vec := &pinecone.Vector{
		Id:     rec.ID,
		Values: &rec.Values,
	}
	if len(rec.SparseValues.Indices) > 0 {
		vec.SparseValues = &pinecone.SparseValues{
			Indices: rec.SparseValues.Indices,
			Values:  rec.SparseValues.Values,
		}
	}
	if len(rec.Metadata) > 0 {
		metadata, err := structpb.NewStruct(rec.Metadata)
		if err != nil {
			return nil, doccrawler.Errorf(doccrawler.EINVALID, "invalid metadata on vector %s: %v", rec.ID, err)
		}
		vec.Metadata = metadata
	}
	return vec, nil
}

func indexMetric(metric string) pinecone.IndexMetric {
	switch metric {
	case "cosine":
		return pinecone.Cosine
	case "euclidean":
		return pinecone.Euclidean
	default:
		return pinecone.Dotproduct
	}
}
