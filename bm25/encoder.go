// Package bm25 provides a deterministic BM25 sparse encoder for hybrid
// search. Terms are hashed to stable 32-bit indices, so the same text
// always produces the same sparse vector across sessions and processes.
package bm25

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/cespare/xxhash/v2"
)

var _ doccrawler.SparseEncoder = (*Encoder)(nil)

// Params are the BM25 weighting parameters. They are frozen per index:
// changing them after vectors are upserted would make query-side and
// document-side weights incompatible, so they are persisted alongside
// the first encode and loaded verbatim afterwards.
type Params struct {
	K1        float64 `json:"k1"`
	B         float64 `json:"b"`
	AvgDocLen float64 `json:"avg_doc_len"`
}

// DefaultParams returns the standard BM25 parameterization.
func DefaultParams() Params {
	return Params{K1: 1.2, B: 0.75, AvgDocLen: 256}
}

// Encoder produces BM25-weighted sparse vectors. It is stateless after
// construction and safe for concurrent use.
type Encoder struct {
	params Params
}

// New creates an encoder with the given parameters.
func New(params Params) *Encoder {
	return &Encoder{params: params}
}

// paramsFile is the on-disk name of the frozen parameter set.
const paramsFile = "bm25_params.json"

// Load returns an encoder whose parameters are persisted under dir.
// The first call writes the defaults; later calls read them back, so
// every process encoding against the same data directory agrees.
func Load(dir string) (*Encoder, error) {
	path := filepath.Join(dir, paramsFile)

	data, err := os.ReadFile(path)
	if err == nil {
		var params Params
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, doccrawler.Errorf(doccrawler.EINTERNAL, "corrupt BM25 params at %s: %v", path, err)
		}
		return New(params), nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	params := DefaultParams()
	data, err = json.MarshalIndent(params, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}
	return New(params), nil
}

// Encode produces the document-side BM25 sparse vector: per-term values
// follow the BM25 term-frequency saturation curve normalized by document
// length. Indices are sorted ascending and unique. Text with no usable
// terms yields an empty vector.
func (e *Encoder) Encode(text string) (doccrawler.SparseVector, error) {
	terms := tokenize(text)
	if len(terms) == 0 {
		return doccrawler.SparseVector{}, nil
	}

	counts := make(map[uint32]float64, len(terms))
	for _, term := range terms {
		counts[hashTerm(term)]++
	}

	docLen := float64(len(terms))
	k1, b, avgdl := e.params.K1, e.params.B, e.params.AvgDocLen

	indices := make([]uint32, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float32, len(indices))
	for i, idx := range indices {
		tf := counts[idx]
		values[i] = float32(tf * (k1 + 1) / (tf + k1*(1-b+b*docLen/avgdl)))
	}
	return doccrawler.SparseVector{Indices: indices, Values: values}, nil
}

// EncodeQuery produces the query-side sparse vector: each distinct term
// gets an equal share of unit weight.
func (e *Encoder) EncodeQuery(text string) (doccrawler.SparseVector, error) {
	terms := tokenize(text)
	if len(terms) == 0 {
		return doccrawler.SparseVector{}, nil
	}

	distinct := make(map[uint32]struct{}, len(terms))
	for _, term := range terms {
		distinct[hashTerm(term)] = struct{}{}
	}

	indices := make([]uint32, 0, len(distinct))
	for idx := range distinct {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	weight := float32(1) / float32(len(indices))
	values := make([]float32, len(indices))
	for i := range values {
		values[i] = weight
	}
	return doccrawler.SparseVector{Indices: indices, Values: values}, nil
}

// hashTerm maps a term to a stable 32-bit index.
func hashTerm(term string) uint32 {
	return uint32(xxhash.Sum64String(term))
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {},
}

// tokenize lowercases the text, splits on non-alphanumeric runs, and
// drops single-character tokens and stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
