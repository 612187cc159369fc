package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newHTTPMetrics(reg)

	m.Observe(http.MethodGet, "/products", http.StatusOK, 120*time.Millisecond)
	m.Observe(http.MethodGet, "/products", http.StatusOK, 80*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var counter, histogram *dto.MetricFamily
	for _, mf := range families {
		switch mf.GetName() {
		case "http_requests_total":
			counter = mf
		case "http_request_duration_seconds":
			histogram = mf
		}
	}

	if counter == nil {
		t.Fatal("http_requests_total not registered")
	}
	if got := counter.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}

	if histogram == nil {
		t.Fatal("http_request_duration_seconds not registered")
	}
	if got := histogram.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
		t.Fatalf("expected 2 duration samples, got %v", got)
	}
}

func TestObserveOnNilMetricsIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.Observe(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel(""); got != "unknown" {
		t.Fatalf("expected unknown for empty route, got %q", got)
	}
}
