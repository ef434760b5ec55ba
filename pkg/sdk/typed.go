package localsearch

import (
	"context"
	"fmt"
	"sync"
)

// TypedHit is a matched item with its score.
type TypedHit[T any] struct {
	Item  T
	Score float64
	Hits  []Hit
}

// TypedIndex is a schema-first view over an Index. T's struct tags name the
// ID field and the tag fields; matched items are returned as T.
type TypedIndex[T any] struct {
	idx  Index
	meta *schemaMeta

	mu    sync.RWMutex
	items map[string]T
}

// NewTypedIndex creates a typed view over idx. Schema is parsed once.
// Documents added to idx directly are not visible through Find.
func NewTypedIndex[T any](idx Index) (*TypedIndex[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, fmt.Errorf("typed index %q: %w", idx.ID(), err)
	}
	return &TypedIndex[T]{idx: idx, meta: meta, items: make(map[string]T)}, nil
}

// Upsert adds or replaces a single item.
func (t *TypedIndex[T]) Upsert(ctx context.Context, item T) error {
	_, err := t.UpsertBatch(ctx, []T{item})
	return err
}

// UpsertBatch adds or replaces items. Items with an empty ID fail individually.
func (t *TypedIndex[T]) UpsertBatch(ctx context.Context, items []T) ([]BatchResult, error) {
	docs := make([]Document, len(items))
	for i, item := range items {
		docs[i] = t.meta.toDocument(item)
	}

	results, err := t.idx.AddOrUpdate(ctx, docs)

	t.mu.Lock()
	for i, r := range results {
		if r.OK {
			t.items[r.ID] = items[i]
		}
	}
	t.mu.Unlock()
	return results, err
}

// Get returns a stored item.
func (t *TypedIndex[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, ok := t.items[id]
	return item, ok
}

// Delete removes items and returns how many existed.
func (t *TypedIndex[T]) Delete(ctx context.Context, ids ...string) (int, error) {
	n, results, err := t.idx.Delete(ctx, ids)

	t.mu.Lock()
	for _, r := range results {
		if r.OK {
			delete(t.items, r.ID)
		}
	}
	t.mu.Unlock()
	return n, err
}

// Find returns matched items, best first.
func (t *TypedIndex[T]) Find(ctx context.Context, query string, maxResults uint32) (Status, []TypedHit[T]) {
	st, results := t.idx.Find(ctx, query, maxResults)
	if st != StatusSuccess {
		return st, nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	hits := make([]TypedHit[T], 0, len(results))
	for _, r := range results {
		item, ok := t.items[r.ID]
		if !ok {
			continue
		}
		hits = append(hits, TypedHit[T]{Item: item, Score: r.Score, Hits: r.Hits})
	}
	return st, hits
}
