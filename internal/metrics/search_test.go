package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewSearch_ReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	a, err := NewSearch(reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewSearch(reg)
	if err != nil {
		t.Fatalf("second NewSearch: %v", err)
	}

	a.FindTotal.WithLabelValues("settings", "success").Inc()
	b.FindTotal.WithLabelValues("settings", "success").Inc()

	if got := testutil.ToFloat64(a.FindTotal.WithLabelValues("settings", "success")); got != 2 {
		t.Errorf("find_total = %v, want 2 (shared collector)", got)
	}
}

func TestRegisterOrReuse_IncompatibleType(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "localsearch",
		Name:      "documents",
		Help:      "Documents stored per index.",
	}, []string{"index"})
	reg.MustRegister(counter)

	if _, err := NewSearch(reg); err == nil {
		t.Fatal("expected error for incompatible collector")
	}
}
