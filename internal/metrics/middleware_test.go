package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newHTTPRouter(t *testing.T) (*HTTP, chi.Router) {
	t.Helper()
	m, err := NewHTTP(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	r := chi.NewRouter()
	r.Use(m.Middleware())
	return m, r
}

func serve(r http.Handler, method, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, http.NoBody))
}

func TestHTTPMiddleware_LabelsByRoutePattern(t *testing.T) {
	m, r := newHTTPRouter(t)
	r.Get("/indexes/{index}/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	serve(r, http.MethodGet, "/indexes/settings/search")
	serve(r, http.MethodGet, "/indexes/apps/search")

	got := testutil.ToFloat64(m.Total.WithLabelValues("GET", "/indexes/{index}/search", "200"))
	if got != 2 {
		t.Errorf("requests_total = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(m.Duration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
	if v := testutil.ToFloat64(m.InFlight); v != 0 {
		t.Errorf("in flight after requests = %v, want 0", v)
	}
}

func TestHTTPMiddleware_StatusCodes(t *testing.T) {
	m, r := newHTTPRouter(t)
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/multi", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMultiStatus)
	})

	serve(r, http.MethodGet, "/missing")
	serve(r, http.MethodGet, "/multi")

	if v := testutil.ToFloat64(m.Total.WithLabelValues("GET", "/missing", "404")); v != 1 {
		t.Errorf("404 count = %v", v)
	}
	if v := testutil.ToFloat64(m.Total.WithLabelValues("GET", "/multi", "207")); v != 1 {
		t.Errorf("207 count = %v", v)
	}
}

func TestHTTPMiddleware_UnmatchedRoute(t *testing.T) {
	m, r := newHTTPRouter(t)
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})

	serve(r, http.MethodGet, "/does/not/exist")

	if v := testutil.ToFloat64(m.Total.WithLabelValues("GET", unmatchedRoute, "404")); v != 1 {
		t.Errorf("unmatched count = %v, want 1", v)
	}
}

func TestNewHTTP_ReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewHTTP(reg)
	if err != nil {
		t.Fatalf("first NewHTTP: %v", err)
	}
	b, err := NewHTTP(reg)
	if err != nil {
		t.Fatalf("second NewHTTP: %v", err)
	}
	if a.Total != b.Total {
		t.Error("expected the registered counter to be reused")
	}
}
