package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Search holds the per-index search collectors.
// Several indexes share one Search through RegisterOrReuse.
type Search struct {
	FindTotal      *prometheus.CounterVec
	FindResults    *prometheus.HistogramVec
	FindDuration   *prometheus.HistogramVec
	Documents      *prometheus.GaugeVec
	IndexesCreated *prometheus.CounterVec
}

// NewSearch creates the search collectors and registers them on reg.
func NewSearch(reg prometheus.Registerer) (*Search, error) {
	m := &Search{
		FindTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "localsearch",
			Name:      "find_total",
			Help:      "Find calls by index and response status.",
		}, []string{"index", "status"}),
		FindResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "localsearch",
			Name:      "find_results",
			Help:      "Number of results returned by successful Find calls.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{"index"}),
		FindDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "localsearch",
			Name:      "find_duration_seconds",
			Help:      "Find latency in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"index"}),
		Documents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "localsearch",
			Name:      "documents",
			Help:      "Documents stored per index.",
		}, []string{"index"}),
		IndexesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "localsearch",
			Name:      "index_created_total",
			Help:      "Indexes created by backend.",
		}, []string{"index", "backend"}),
	}

	if err := RegisterOrReuse(reg, &m.FindTotal); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &m.FindResults); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &m.FindDuration); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &m.Documents); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &m.IndexesCreated); err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterOrReuse registers a collector or reuses an existing one.
func RegisterOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}
