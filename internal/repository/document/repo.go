package document

import (
	"fmt"

	"github.com/kailas-cloud/localsearch/internal/domain"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
)

// compactMinDeleted is the tombstone count from which Repo compacts its records.
const compactMinDeleted = 64

type record struct {
	id      string
	tags    []tokenizer.Text
	deleted bool
}

// Repo is an in-memory document store: ID -> tokenized tags, iterated in
// insertion order. An overwritten document keeps its original position.
//
// Repo is not safe for concurrent use; callers serialize access.
type Repo struct {
	records []record
	index   map[string]int
	deleted int
}

// New creates an empty document store.
func New() *Repo {
	return &Repo{index: make(map[string]int)}
}

// AddOrUpdate tokenizes every tag and replaces any prior entry for id wholesale.
func (r *Repo) AddOrUpdate(id string, tags []string) error {
	if id == "" {
		return fmt.Errorf("add document: empty ID: %w", domain.ErrInvalidArgument)
	}

	tokenized := make([]tokenizer.Text, len(tags))
	for i, tag := range tags {
		tokenized[i] = tokenizer.Tokenize(tag)
	}

	if pos, ok := r.index[id]; ok {
		r.records[pos].tags = tokenized
		return nil
	}
	r.index[id] = len(r.records)
	r.records = append(r.records, record{id: id, tags: tokenized})
	return nil
}

// Delete removes id. Missing IDs are not an error and report false.
func (r *Repo) Delete(id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("delete document: empty ID: %w", domain.ErrInvalidArgument)
	}

	pos, ok := r.index[id]
	if !ok {
		return false, nil
	}
	delete(r.index, id)
	r.records[pos] = record{deleted: true}
	r.deleted++
	r.compactIfNeeded()
	return true, nil
}

// Size returns the number of stored documents.
func (r *Repo) Size() int { return len(r.index) }

// Entries calls fn for every document in insertion order until fn returns false.
func (r *Repo) Entries(fn func(id string, tags []tokenizer.Text) bool) {
	for _, rec := range r.records {
		if rec.deleted {
			continue
		}
		if !fn(rec.id, rec.tags) {
			return
		}
	}
}

// Clear removes every document and returns how many were stored.
func (r *Repo) Clear() int {
	n := len(r.index)
	r.records = nil
	r.index = make(map[string]int)
	r.deleted = 0
	return n
}

func (r *Repo) compactIfNeeded() {
	if r.deleted < compactMinDeleted || r.deleted*2 < len(r.records) {
		return
	}
	live := make([]record, 0, len(r.index))
	for _, rec := range r.records {
		if rec.deleted {
			continue
		}
		r.index[rec.id] = len(live)
		live = append(live, rec)
	}
	r.records = live
	r.deleted = 0
}
