package search

import (
	"context"
	"strings"
	"sync"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
)

// MemoryIndex scans pre-folded documents linearly.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs []*Document
}

// NewMemoryIndex returns an empty scanner.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Rebuild implements Index.
func (m *MemoryIndex) Rebuild(books []domain.Book) error {
	docs := make([]*Document, len(books))
	for i, b := range books {
		docs[i] = NewDocument(b, i)
	}

	m.mu.Lock()
	m.docs = docs
	m.mu.Unlock()
	return nil
}

// Match implements Index.
func (m *MemoryIndex) Match(ctx context.Context, q Query) ([]string, error) {
	clauses := q.active()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for _, doc := range m.docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !matchesAll(doc, clauses) {
			continue
		}
		ids = append(ids, doc.ID)
		if q.Limit > 0 && len(ids) == q.Limit {
			break
		}
	}
	return ids, nil
}

// Close implements Index.
func (m *MemoryIndex) Close() error {
	return nil
}

func matchesAll(doc *Document, clauses []Clause) bool {
	for _, c := range clauses {
		if !matchesAny(doc, c) {
			return false
		}
	}
	return true
}

func matchesAny(doc *Document, c Clause) bool {
	for _, f := range c.Fields {
		if strings.Contains(doc.Value(f), c.Needle) {
			return true
		}
	}
	return false
}
