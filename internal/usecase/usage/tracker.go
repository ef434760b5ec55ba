package usage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/localsearch/internal/domain"
	domusage "github.com/kailas-cloud/localsearch/internal/domain/usage"
)

const flushTimeout = 2 * time.Second

// Tracker counts performed searches per index and UTC day.
// The hot path (OnSearchPerformed) only touches memory; increments are
// written behind to the store by Flush.
type Tracker struct {
	// flushMu keeps Count from reading while a flush has taken pending
	// increments out but not yet stored them.
	flushMu sync.RWMutex
	mu      sync.Mutex
	pending map[string]int64
	store   CounterStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewTracker creates a tracker over the given store.
func NewTracker(store CounterStore, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		pending: make(map[string]int64),
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

func dailyKey(index string, day time.Time) string {
	return fmt.Sprintf("%susage:%s:daily:%s", domain.KeyPrefix, index, day.UTC().Format(domusage.DayFormat))
}

// OnSearchPerformed records one performed search for index.
func (t *Tracker) OnSearchPerformed(index string) {
	t.mu.Lock()
	t.pending[dailyKey(index, t.now())]++
	t.mu.Unlock()
}

// Flush writes pending increments to the store. Increments that fail to
// persist are kept for the next flush.
func (t *Tracker) Flush(ctx context.Context) error {
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	t.mu.Lock()
	batch := t.pending
	t.pending = make(map[string]int64, len(batch))
	t.mu.Unlock()

	var errs []error
	for key, n := range batch {
		if err := t.store.IncrBy(ctx, key, n); err != nil {
			t.logger.Warn("Failed to persist search count", zap.String("key", key), zap.Error(err))
			errs = append(errs, err)
			t.mu.Lock()
			t.pending[key] += n
			t.mu.Unlock()
		}
	}
	return errors.Join(errs...)
}

// Run flushes every interval until ctx is done, then flushes once more.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			_ = t.Flush(flushCtx)
			cancel()
			return
		case <-ticker.C:
			_ = t.Flush(ctx)
		}
	}
}

// Count returns the searches recorded for index on day, flushed or not.
func (t *Tracker) Count(ctx context.Context, index string, day time.Time) (int64, error) {
	key := dailyKey(index, day)

	t.flushMu.RLock()
	defer t.flushMu.RUnlock()

	stored, err := t.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return stored + t.pending[key], nil
}
