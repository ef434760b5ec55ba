package localsearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/kailas-cloud/localsearch/internal/logger"
	"github.com/kailas-cloud/localsearch/internal/metrics"
)

// observer provides logging, metrics and the search reporter for one index.
type observer struct {
	index    string
	label    string // metrics index label; empty disables metrics
	logger   *slog.Logger
	metrics  *metrics.Search
	reporter SearchMetricsReporter
}

func newObserver(index string, cfg *indexConfig) (*observer, error) {
	o := &observer{
		index:    index,
		logger:   cfg.logger,
		reporter: cfg.reporter,
	}
	if cfg.metricsReg != nil && cfg.metricsID != "" {
		m, err := metrics.NewSearch(cfg.metricsReg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
		o.label = cfg.metricsID
	}
	return o, nil
}

func (o *observer) created(backend Backend) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.IndexesCreated.WithLabelValues(o.label, string(backend)).Inc()
}

func (o *observer) documents(size int) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.Documents.WithLabelValues(o.label).Set(float64(size))
}

func (o *observer) mutation(ctx context.Context, op string, size int, results []BatchResult) {
	if o == nil {
		return
	}
	o.documents(size)

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	o.debug(ctx, "index mutated",
		"op", op,
		"items", len(results),
		"failed", failed,
		"size", size,
	)
}

func (o *observer) find(ctx context.Context, start time.Time, st Status, n int) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		o.metrics.FindTotal.WithLabelValues(o.label, string(st)).Inc()
		o.metrics.FindDuration.WithLabelValues(o.label).Observe(dur.Seconds())
		if st == StatusSuccess {
			o.metrics.FindResults.WithLabelValues(o.label).Observe(float64(n))
		}
	}
	if st == StatusSuccess && o.reporter != nil {
		o.reporter.OnSearchPerformed(o.index)
	}

	o.debug(ctx, "search completed",
		"status", string(st),
		"results", n,
		"duration", dur,
	)
}

// debug logs to the configured slog logger, or to the zap logger carried by ctx.
func (o *observer) debug(ctx context.Context, msg string, kv ...any) {
	if o.logger != nil {
		o.logger.DebugContext(ctx, msg, append([]any{"index", o.index}, kv...)...)
		return
	}
	logger.FromContext(logger.WithIndex(ctx, o.index)).Sugar().Debugw(msg, kv...)
}
