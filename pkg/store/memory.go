package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process archive for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-process archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// clone copies a document, including the content bytes, so stored and
// returned documents never share state with callers.
func clone(doc *Document) *Document {
	out := *doc
	if doc.Content != nil {
		out.Content = make([]byte, len(doc.Content))
		copy(out.Content, doc.Content)
	}
	return &out
}

// Save inserts or replaces a document, refreshing UpdatedAt.
func (s *MemoryStore) Save(_ context.Context, doc *Document) error {
	doc.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	s.docs[doc.ID] = clone(doc)
	s.mu.Unlock()
	return nil
}

// Get retrieves a document by ID. Returns nil, nil if missing.
func (s *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return clone(doc), nil
}

// List returns summaries of all documents, newest first.
func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, Summary{
			ID:        doc.ID,
			Title:     doc.Title,
			Organism:  doc.Organism,
			Version:   doc.Version,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
