package localsearch

import (
	"context"
	"sync"
)

// SyncIndex serializes access to an Index with a mutex.
type SyncIndex struct {
	mu    sync.Mutex
	inner Index
}

var _ Index = (*SyncIndex)(nil)

// Synchronized wraps idx so it can be shared between goroutines.
// Wrapping an already synchronized index returns it unchanged.
func Synchronized(idx Index) *SyncIndex {
	if s, ok := idx.(*SyncIndex); ok {
		return s
	}
	return &SyncIndex{inner: idx}
}

// ID returns the index identifier.
func (s *SyncIndex) ID() string { return s.inner.ID() }

// Backend returns the search backend.
func (s *SyncIndex) Backend() Backend { return s.inner.Backend() }

// GetSize returns the number of documents.
func (s *SyncIndex) GetSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetSize()
}

// AddOrUpdate stores the documents, replacing those with the same ID.
func (s *SyncIndex) AddOrUpdate(ctx context.Context, docs []Document) ([]BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.AddOrUpdate(ctx, docs)
}

// Delete removes the documents and returns how many existed.
func (s *SyncIndex) Delete(ctx context.Context, ids []string) (int, []BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Delete(ctx, ids)
}

// UpdateDocuments adds, updates or deletes (no tags) documents.
func (s *SyncIndex) UpdateDocuments(ctx context.Context, docs []Document) (int, []BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.UpdateDocuments(ctx, docs)
}

// ClearIndex removes every document.
func (s *SyncIndex) ClearIndex(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.ClearIndex(ctx)
}

// Find returns documents relevant to query, best first.
func (s *SyncIndex) Find(ctx context.Context, query string, maxResults uint32) (Status, []Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Find(ctx, query, maxResults)
}

// SetSearchParams replaces the scoring params.
func (s *SyncIndex) SetSearchParams(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.SetSearchParams(p)
}

// GetSearchParams returns the current scoring params.
func (s *SyncIndex) GetSearchParams() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetSearchParams()
}
