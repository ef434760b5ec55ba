package localsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/localsearch/internal/domain"
	dombatch "github.com/kailas-cloud/localsearch/internal/domain/batch"
	"github.com/kailas-cloud/localsearch/internal/fuzzy"
	docrepo "github.com/kailas-cloud/localsearch/internal/repository/document"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
	searchuc "github.com/kailas-cloud/localsearch/internal/usecase/search"
)

// Index is a searchable set of documents.
//
// Batch mutations are applied item by item: invalid items (an empty ID)
// fail with ErrInvalidArgument in their BatchResult while the others are
// applied. The returned error joins the item errors.
type Index interface {
	ID() string
	Backend() Backend
	GetSize() int
	AddOrUpdate(ctx context.Context, docs []Document) ([]BatchResult, error)
	Delete(ctx context.Context, ids []string) (int, []BatchResult, error)
	// UpdateDocuments adds or updates documents and deletes those with no tags.
	UpdateDocuments(ctx context.Context, docs []Document) (int, []BatchResult, error)
	ClearIndex(ctx context.Context) int
	Find(ctx context.Context, query string, maxResults uint32) (Status, []Result)
	SetSearchParams(p Params)
	GetSearchParams() Params
}

// LocalIndex is the in-process Index. Not safe for concurrent use.
type LocalIndex struct {
	id      string
	backend Backend
	engine  searchuc.Backend
	obs     *observer
}

var _ Index = (*LocalIndex)(nil)

// NewIndex creates an empty index.
func NewIndex(id string, opts ...Option) (*LocalIndex, error) {
	if id == "" {
		return nil, fmt.Errorf("localsearch: index id: %w", ErrInvalidArgument)
	}
	cfg := newIndexConfig(opts)

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("localsearch: index %q: %w", id, err)
	}
	obs, err := newObserver(id, cfg)
	if err != nil {
		return nil, fmt.Errorf("localsearch: index %q: %w", id, err)
	}
	obs.created(cfg.backend)
	obs.documents(0)

	return &LocalIndex{id: id, backend: cfg.backend, engine: engine, obs: obs}, nil
}

func newEngine(cfg *indexConfig) (searchuc.Backend, error) {
	switch b := domain.Backend(cfg.backend); {
	case !b.IsValid():
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnsupportedBackend, b)
	case !b.IsSupported():
		return nil, fmt.Errorf("%w: %w: backend %q", ErrUnsupportedBackend, ErrNotImplemented, b)
	}
	engine := searchuc.NewLinearScan(docrepo.New(), fuzzy.NewMatcher()).
		WithQueryTokenizer(tokenizer.NewCache(cfg.queryCacheSize))
	engine.SetSearchParams(toInternalParams(cfg.params))
	return engine, nil
}

// ID returns the index identifier.
func (x *LocalIndex) ID() string { return x.id }

// Backend returns the search backend.
func (x *LocalIndex) Backend() Backend { return x.backend }

// GetSize returns the number of documents.
func (x *LocalIndex) GetSize() int { return x.engine.GetSize() }

// AddOrUpdate stores the documents, replacing those with the same ID.
func (x *LocalIndex) AddOrUpdate(ctx context.Context, docs []Document) ([]BatchResult, error) {
	rs := x.engine.AddOrUpdate(toInternalDocuments(docs))
	out := fromBatchResults(rs)
	x.obs.mutation(ctx, "add_or_update", x.engine.GetSize(), out)
	return out, batchErr("add or update", rs)
}

// Delete removes the documents and returns how many existed.
func (x *LocalIndex) Delete(ctx context.Context, ids []string) (int, []BatchResult, error) {
	n, rs := x.engine.Delete(ids)
	out := fromBatchResults(rs)
	x.obs.mutation(ctx, "delete", x.engine.GetSize(), out)
	return n, out, batchErr("delete", rs)
}

// UpdateDocuments adds or updates documents with tags and deletes documents
// without tags. Returns how many documents were deleted.
func (x *LocalIndex) UpdateDocuments(ctx context.Context, docs []Document) (int, []BatchResult, error) {
	n, rs := x.engine.UpdateDocuments(toInternalDocuments(docs))
	out := fromBatchResults(rs)
	x.obs.mutation(ctx, "update_documents", x.engine.GetSize(), out)
	return n, out, batchErr("update documents", rs)
}

// ClearIndex removes every document and returns how many there were.
func (x *LocalIndex) ClearIndex(ctx context.Context) int {
	n := x.engine.ClearIndex()
	x.obs.mutation(ctx, "clear", 0, nil)
	return n
}

// Find returns documents relevant to query, best first.
// maxResults 0 returns every match.
func (x *LocalIndex) Find(ctx context.Context, query string, maxResults uint32) (Status, []Result) {
	start := time.Now()
	st, rs := x.engine.Find(query, maxResults)
	out := fromResults(rs)
	x.obs.find(ctx, start, Status(st), len(out))
	return Status(st), out
}

// SetSearchParams replaces the scoring params for later searches.
func (x *LocalIndex) SetSearchParams(p Params) { x.engine.SetSearchParams(toInternalParams(p)) }

// GetSearchParams returns the current scoring params.
func (x *LocalIndex) GetSearchParams() Params { return fromInternalParams(x.engine.GetSearchParams()) }

func batchErr(op string, rs []dombatch.Result) error {
	if err := dombatch.Join(rs); err != nil {
		return fmt.Errorf("%s: %d of %d items failed: %w", op, dombatch.Failed(rs), len(rs), err)
	}
	return nil
}
