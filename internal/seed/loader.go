package seed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	localsearch "github.com/kailas-cloud/localsearch/pkg/sdk"
)

// Registry hands out indexes by ID, creating them on first use.
type Registry interface {
	GetIndex(ctx context.Context, id string, backend localsearch.Backend) (localsearch.Index, error)
}

// Summary reports what one load applied.
type Summary struct {
	Index   string
	Applied int
	Deleted int
	Failed  int
}

type source struct {
	index string
	ids   []string
}

// Loader applies seed files to indexes. Each file owns the IDs it lists:
// reloading a file deletes the documents it no longer lists, from the index it
// listed them in. An ID listed by several files of one index is shared: the
// last applied file sets its tags and it stays until no file lists it.
type Loader struct {
	registry Registry
	backend  localsearch.Backend
	logger   *zap.Logger

	mu      sync.Mutex
	sources map[string]source
	errs    map[string]error
}

// NewLoader creates a Loader. backend is used for files that do not name one.
func NewLoader(registry Registry, backend localsearch.Backend, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		registry: registry,
		backend:  backend,
		logger:   logger,
		sources:  make(map[string]source),
		errs:     make(map[string]error),
	}
}

// LoadAll loads every path. A failing file does not stop the others.
func (l *Loader) LoadAll(ctx context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		if _, err := l.LoadFile(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFile reads path and applies it. The outcome is remembered for Ping.
func (l *Loader) LoadFile(ctx context.Context, path string) (Summary, error) {
	key := absPath(path)

	f, err := ReadFile(path)
	if err != nil {
		l.record(key, err)
		return Summary{}, err
	}

	sum, err := l.Apply(ctx, key, f)
	if err != nil {
		err = fmt.Errorf("seed %s: %w", path, err)
	}
	l.record(key, err)
	return sum, err
}

// Apply writes f to its index on behalf of the source key.
func (l *Loader) Apply(ctx context.Context, key string, f File) (Summary, error) {
	backend := l.backend
	if f.Backend != "" {
		backend = localsearch.Backend(f.Backend)
	}
	idx, err := l.registry.GetIndex(ctx, f.Index, backend)
	if err != nil {
		return Summary{}, err
	}

	docs := make([]localsearch.Document, len(f.Documents))
	ids := make([]string, 0, len(f.Documents))
	for i, d := range f.Documents {
		docs[i] = localsearch.Document{ID: d.ID, Tags: d.Tags}
		if d.ID != "" && len(d.Tags) > 0 {
			ids = append(ids, d.ID)
		}
	}

	sum := Summary{Index: f.Index}
	deleted, results, applyErr := idx.UpdateDocuments(ctx, docs)
	sum.Deleted = deleted
	for _, r := range results {
		if r.OK {
			sum.Applied++
		} else {
			sum.Failed++
		}
	}

	staleIndex, stale, shared := l.release(key, f.Index, ids)
	if len(shared) > 0 {
		l.logger.Warn("seed IDs also listed by another file",
			zap.String("source", key),
			zap.String("index", f.Index),
			zap.Strings("ids", shared),
		)
	}
	if len(stale) > 0 {
		n, err := l.drop(ctx, idx, staleIndex, stale)
		sum.Deleted += n
		applyErr = errors.Join(applyErr, err)
	}

	l.logger.Info("seed applied",
		zap.String("source", key),
		zap.String("index", f.Index),
		zap.Int("applied", sum.Applied),
		zap.Int("deleted", sum.Deleted),
		zap.Int("failed", sum.Failed),
		zap.Int("size", idx.GetSize()),
	)
	return sum, applyErr
}

// release swaps the IDs owned by key. It returns the index the source used
// before with the IDs no source lists there anymore, and the IDs of ids that
// another source also lists in index.
func (l *Loader) release(key, index string, ids []string) (staleIndex string, stale, shared []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.sources[key]
	l.sources[key] = source{index: index, ids: ids}

	for _, id := range ids {
		if l.listedElsewhere(key, index, id) {
			shared = append(shared, id)
		}
	}
	if !ok {
		return "", nil, shared
	}

	for _, id := range prev.ids {
		if prev.index == index && slices.Contains(ids, id) {
			continue
		}
		if l.listedElsewhere(key, prev.index, id) {
			continue
		}
		stale = append(stale, id)
	}
	return prev.index, stale, shared
}

// listedElsewhere reports whether a source other than key lists id in index.
// The caller holds l.mu.
func (l *Loader) listedElsewhere(key, index, id string) bool {
	for k, src := range l.sources {
		if k != key && src.index == index && slices.Contains(src.ids, id) {
			return true
		}
	}
	return false
}

// drop deletes ids from index, which is current unless the file moved indexes.
func (l *Loader) drop(ctx context.Context, current localsearch.Index, index string, ids []string) (int, error) {
	idx := current
	if index != current.ID() {
		var err error
		if idx, err = l.registry.GetIndex(ctx, index, l.backend); err != nil {
			return 0, fmt.Errorf("previous index %s: %w", index, err)
		}
	}
	n, _, err := idx.Delete(ctx, ids)
	return n, err
}

func (l *Loader) record(key string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.logger.Warn("seed load failed", zap.String("source", key), zap.Error(err))
		l.errs[key] = err
		return
	}
	delete(l.errs, key)
}

// Ping reports the errors of the last load of every file.
func (l *Loader) Ping(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]string, 0, len(l.errs))
	for k := range l.errs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, l.errs[k])
	}
	return errors.Join(errs...)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
