package memory

import (
	"context"
	"sync"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.SharedDocument
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.SharedDocument),
	}
}

// Save persists the document in memory.
func (s *Store) Save(ctx context.Context, doc domain.SharedDocument) error {
	// Copy the states so later edits by the caller don't leak in, similar to serialization
	doc.Machine = doc.Machine.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[doc.ID] = doc
	return nil
}

// Load retrieves the document from memory.
func (s *Store) Load(ctx context.Context, id string) (domain.SharedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[id]
	if !ok {
		return domain.SharedDocument{}, domain.ErrDocumentNotFound
	}
	doc.Machine = doc.Machine.Clone()
	return doc, nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored document IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
