package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRequestMetrics(reg)

	m.Observe("/orders", "GET", 200, 120*time.Millisecond)
	m.Observe("/orders", "GET", 200, 80*time.Millisecond)
	m.Observe("/orders/{orderId}/finalize", "POST", 422, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.statuses.WithLabelValues("/orders", "GET", "200")); got != 2 {
		t.Fatalf("expected 2 ok requests, got %f", got)
	}
	if got := testutil.ToFloat64(m.statuses.WithLabelValues("/orders/{orderId}/finalize", "POST", "422")); got != 1 {
		t.Fatalf("expected 1 rejected finalize, got %f", got)
	}
	if count := testutil.CollectAndCount(m.duration); count == 0 {
		t.Fatalf("expected duration samples to be collected")
	}
}

func TestRequestMetricsNilSafe(t *testing.T) {
	var m *RequestMetrics
	m.Observe("/orders", "GET", 200, time.Millisecond)

	empty := NewRequestMetrics(nil)
	empty.Observe("", "GET", 500, time.Millisecond)
}
