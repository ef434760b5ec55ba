package localsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetricsReporter is notified once per performed search, that is every
// Find that returns StatusSuccess, with or without results.
type SearchMetricsReporter interface {
	OnSearchPerformed(index string)
}

// Option configures an Index or a Service.
type Option interface {
	apply(*indexConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*indexConfig)

func (f optionFunc) apply(c *indexConfig) { f(c) }

type indexConfig struct {
	backend        Backend
	params         Params
	queryCacheSize int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
	metricsID  string
	reporter   SearchMetricsReporter
}

func newIndexConfig(opts []Option) *indexConfig {
	cfg := &indexConfig{
		backend: BackendLinearMap,
		params:  DefaultParams(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	return cfg
}

// WithBackend selects the search backend. Default: BackendLinearMap.
func WithBackend(b Backend) Option {
	return optionFunc(func(c *indexConfig) {
		c.backend = b
	})
}

// WithSearchParams sets the initial scoring params. Default: DefaultParams().
func WithSearchParams(p Params) Option {
	return optionFunc(func(c *indexConfig) {
		c.params = p
	})
}

// WithQueryCacheSize sets how many distinct queries keep their tokenization.
// Default: 256.
func WithQueryCacheSize(n int) Option {
	return optionFunc(func(c *indexConfig) {
		c.queryCacheSize = n
	})
}

// WithLogger enables structured logging for index operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *indexConfig) {
		c.logger = l
	})
}

// WithPrometheus registers search metrics on the given registerer.
// Pass nil to disable (default). Several indexes may share one registerer.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *indexConfig) {
		c.metricsReg = reg
	})
}

// WithMetricsID sets the index label of recorded metrics. Metrics are only
// recorded when it is non-empty. A Service uses the index ID.
func WithMetricsID(id string) Option {
	return optionFunc(func(c *indexConfig) {
		c.metricsID = id
	})
}

// WithReporter sets the hook notified after every performed search.
func WithReporter(r SearchMetricsReporter) Option {
	return optionFunc(func(c *indexConfig) {
		c.reporter = r
	})
}
