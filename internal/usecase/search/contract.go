package search

import (
	"github.com/kailas-cloud/localsearch/internal/domain"
	"github.com/kailas-cloud/localsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/localsearch/internal/domain/document"
	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
	"github.com/kailas-cloud/localsearch/internal/domain/search/result"
	"github.com/kailas-cloud/localsearch/internal/domain/search/status"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
)

// DocumentStore holds the tokenized documents of one index, in insertion order.
type DocumentStore interface {
	AddOrUpdate(id string, tags []string) error
	Delete(id string) (bool, error)
	Size() int
	Entries(fn func(id string, tags []tokenizer.Text) bool)
	Clear() int
}

// Matcher decides whether a single tag is relevant to a query.
type Matcher interface {
	IsRelevant(query, tag tokenizer.Text, p params.Params) (bool, float64, []result.Hit)
}

// QueryTokenizer tokenizes incoming queries.
type QueryTokenizer interface {
	Tokenize(text string) tokenizer.Text
}

// Backend is a search engine over one index.
type Backend interface {
	Kind() domain.Backend
	GetSize() int
	AddOrUpdate(docs []domdoc.Document) []batch.Result
	Delete(ids []string) (int, []batch.Result)
	UpdateDocuments(docs []domdoc.Document) (int, []batch.Result)
	ClearIndex() int
	SetSearchParams(p params.Params)
	GetSearchParams() params.Params
	Find(query string, maxResults uint32) (status.Status, []result.Result)
}

var _ Backend = (*LinearScanBackend)(nil)
