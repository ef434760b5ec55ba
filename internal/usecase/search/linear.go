package search

import (
	"sort"

	"github.com/kailas-cloud/localsearch/internal/domain"
	"github.com/kailas-cloud/localsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/localsearch/internal/domain/document"
	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
	"github.com/kailas-cloud/localsearch/internal/domain/search/result"
	"github.com/kailas-cloud/localsearch/internal/domain/search/status"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
)

type tokenizeFunc func(string) tokenizer.Text

func (f tokenizeFunc) Tokenize(text string) tokenizer.Text { return f(text) }

// LinearScanBackend answers queries by matching every stored document.
//
// For each document the tags are tried in registration order and the first
// relevant tag decides the score and hits; later tags are not evaluated.
// Not safe for concurrent use.
type LinearScanBackend struct {
	store   DocumentStore
	matcher Matcher
	queries QueryTokenizer
	params  params.Params
}

// NewLinearScan creates a linear scan backend with default params.
func NewLinearScan(store DocumentStore, matcher Matcher) *LinearScanBackend {
	return &LinearScanBackend{
		store:   store,
		matcher: matcher,
		queries: tokenizeFunc(tokenizer.Tokenize),
		params:  params.Default(),
	}
}

// WithQueryTokenizer replaces how queries are tokenized (e.g. with a cache).
func (b *LinearScanBackend) WithQueryTokenizer(t QueryTokenizer) *LinearScanBackend {
	if t != nil {
		b.queries = t
	}
	return b
}

// Kind identifies the backend.
func (b *LinearScanBackend) Kind() domain.Backend { return domain.BackendLinearMap }

// GetSize returns the number of stored documents.
func (b *LinearScanBackend) GetSize() int { return b.store.Size() }

// AddOrUpdate stores every document, replacing earlier entries with the same ID.
// Documents with an empty ID fail individually; the rest are applied.
func (b *LinearScanBackend) AddOrUpdate(docs []domdoc.Document) []batch.Result {
	results := make([]batch.Result, 0, len(docs))
	for _, d := range docs {
		results = append(results, b.add(d))
	}
	return results
}

func (b *LinearScanBackend) add(d domdoc.Document) batch.Result {
	if err := b.store.AddOrUpdate(d.ID(), d.Tags()); err != nil {
		return batch.NewError(d.ID(), err)
	}
	return batch.NewOK(d.ID())
}

// Delete removes the given IDs and returns how many existed.
// Missing IDs succeed without counting; empty IDs fail individually.
func (b *LinearScanBackend) Delete(ids []string) (int, []batch.Result) {
	deleted := 0
	results := make([]batch.Result, 0, len(ids))
	for _, id := range ids {
		ok, err := b.store.Delete(id)
		if err != nil {
			results = append(results, batch.NewError(id, err))
			continue
		}
		if ok {
			deleted++
		}
		results = append(results, batch.NewOK(id))
	}
	return deleted, results
}

// UpdateDocuments adds or updates documents with tags and deletes documents
// without tags. Returns how many documents were deleted.
func (b *LinearScanBackend) UpdateDocuments(docs []domdoc.Document) (int, []batch.Result) {
	deleted := 0
	results := make([]batch.Result, 0, len(docs))
	for _, d := range docs {
		if d.HasTags() {
			results = append(results, b.add(d))
			continue
		}
		ok, err := b.store.Delete(d.ID())
		if err != nil {
			results = append(results, batch.NewError(d.ID(), err))
			continue
		}
		if ok {
			deleted++
		}
		results = append(results, batch.NewOK(d.ID()))
	}
	return deleted, results
}

// ClearIndex removes every document and returns how many were stored.
func (b *LinearScanBackend) ClearIndex() int { return b.store.Clear() }

// SetSearchParams replaces the params used by later Find calls.
func (b *LinearScanBackend) SetSearchParams(p params.Params) { b.params = p }

// GetSearchParams returns the current params.
func (b *LinearScanBackend) GetSearchParams() params.Params { return b.params }

// Find returns the documents relevant to query, best first. Equal scores keep
// insertion order. maxResults 0 means no limit.
func (b *LinearScanBackend) Find(query string, maxResults uint32) (status.Status, []result.Result) {
	if query == "" {
		return status.EmptyQuery, nil
	}
	if b.store.Size() == 0 {
		return status.EmptyIndex, nil
	}

	q := b.queries.Tokenize(query)
	p := b.params
	results := []result.Result{}
	b.store.Entries(func(id string, tags []tokenizer.Text) bool {
		for _, tag := range tags {
			if ok, score, hits := b.matcher.IsRelevant(q, tag, p); ok {
				results = append(results, result.New(id, score, hits))
				break
			}
		}
		return true
	})

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score() > results[j].Score() })
	if maxResults > 0 && len(results) > int(maxResults) {
		results = results[:maxResults]
	}
	return status.Success, results
}
