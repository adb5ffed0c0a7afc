package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"skyfleet/registry/internal/metrics"
)

// Prometheus collectors register globally, so the whole test binary
// shares one metrics registry.
var testMetrics = metrics.NewRegistry()

func TestMetricsMiddleware_LabelsRealRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware(testMetrics))
	r.Get("/widgets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/widgets/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// The counter must carry the chi pattern, not the literal path and
	// not "unknown".
	got := testutil.ToFloat64(testMetrics.HTTPRequestsTotal.WithLabelValues("/widgets/{id}", "GET", "200"))
	if got != 1 {
		t.Errorf("requests_total{endpoint=\"/widgets/{id}\"} = %v, want 1", got)
	}
	if unknown := testutil.ToFloat64(testMetrics.HTTPRequestsTotal.WithLabelValues("unknown", "GET", "200")); unknown != 0 {
		t.Errorf("requests_total{endpoint=\"unknown\"} = %v, want 0", unknown)
	}
}

func TestMetricsMiddleware_RecordsHandlerStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware(testMetrics))
	r.Get("/widgets/{id}/state", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/widgets/42/state", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := testutil.ToFloat64(testMetrics.HTTPRequestsTotal.WithLabelValues("/widgets/{id}/state", "GET", "404"))
	if got != 1 {
		t.Errorf("requests_total for a 404 route = %v, want 1", got)
	}
}

func TestRequestIDMiddleware_EchoesHeader(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-fixed")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "req-fixed" {
		t.Errorf("context request id = %q, want the inbound header", seen)
	}
	if rec.Header().Get("X-Request-ID") != "req-fixed" {
		t.Errorf("response should echo the request id header")
	}
}
