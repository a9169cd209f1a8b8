package search

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/listenupapp/audiobook-mcp/internal/domain"
)

// BleveIndex wraps an in-memory Bleve index.
//
// Thread safety: All public methods are safe for concurrent use.
// Rebuild builds a fresh index and swaps it in under the write lock.
type BleveIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewBleveIndex creates an empty in-memory index.
func NewBleveIndex(logger *slog.Logger) (*BleveIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &BleveIndex{
		index:  index,
		logger: logger,
	}, nil
}

// Rebuild implements Index.
func (s *BleveIndex) Rebuild(books []domain.Book) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	batch := index.NewBatch()
	for i, b := range books {
		doc := NewDocument(b, i)
		// Convert to map to ensure field names match the mapping (lowercase)
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			_ = index.Close()
			return fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return fmt.Errorf("commit batch: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = index
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close previous search index", "error", err)
	}
	s.logger.Debug("rebuilt search index", "documents", len(books))
	return nil
}

// Match implements Index.
func (s *BleveIndex) Match(ctx context.Context, q Query) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := q.Limit
	if size <= 0 {
		count, err := s.index.DocCount()
		if err != nil {
			return nil, fmt.Errorf("count documents: %w", err)
		}
		size = int(count)
	}
	if size == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q), size, 0, false)
	req.SortBy([]string{"position"})

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	var ids []string
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// DocumentCount returns the total number of indexed documents.
func (s *BleveIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Close implements Index.
func (s *BleveIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// buildQuery turns each clause into a disjunction of per-field regexp
// queries and requires all clauses to match. Dot matches newlines so
// multi-line values behave as in MemoryIndex.
func buildQuery(q Query) query.Query {
	clauses := q.active()
	if len(clauses) == 0 {
		return bleve.NewMatchAllQuery()
	}

	conjuncts := make([]query.Query, 0, len(clauses))
	for _, c := range clauses {
		pattern := "(?s).*" + regexp.QuoteMeta(c.Needle) + ".*"
		disjuncts := make([]query.Query, 0, len(c.Fields))
		for _, f := range c.Fields {
			rq := bleve.NewRegexpQuery(pattern)
			rq.SetField(string(f))
			disjuncts = append(disjuncts, rq)
		}
		conjuncts = append(conjuncts, bleve.NewDisjunctionQuery(disjuncts...))
	}
	return bleve.NewConjunctionQuery(conjuncts...)
}
