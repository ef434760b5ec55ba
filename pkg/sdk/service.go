package localsearch

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Service is a registry holding one index per ID.
// Safe for concurrent use; the indexes it returns are synchronized.
type Service struct {
	mu      sync.Mutex
	opts    []Option
	indexes map[string]*SyncIndex
}

// NewService creates a registry. opts apply to every index it creates.
func NewService(opts ...Option) *Service {
	return &Service{
		opts:    opts,
		indexes: make(map[string]*SyncIndex),
	}
}

// GetIndex returns the index for id, creating it with backend on first use.
// An existing index is returned as is, whatever backend is asked for.
func (s *Service) GetIndex(ctx context.Context, id string, backend Backend) (Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.indexes[id]; ok {
		return idx, nil
	}

	opts := append(slices.Clone(s.opts), WithBackend(backend), WithMetricsID(id))
	idx, err := NewIndex(id, opts...)
	if err != nil {
		return nil, err
	}
	s.indexes[id] = Synchronized(idx)
	idx.obs.debug(ctx, "index created", "backend", string(backend))
	return s.indexes[id], nil
}

// Lookup returns an existing index.
func (s *Service) Lookup(id string) (Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexes[id]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", id, ErrIndexNotFound)
	}
	return idx, nil
}

// IDs returns the registered index IDs, sorted.
func (s *Service) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.indexes))
	for id := range s.indexes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
