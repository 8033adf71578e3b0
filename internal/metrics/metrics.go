package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Vendor call outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Metrics groups the relay's collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	vendorRequests    *prometheus.CounterVec
	vendorDuration    *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	analysisFallbacks prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		vendorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docpilot_vendor_requests_total",
			Help: "Vendor API calls by capability and outcome.",
		}, []string{"capability", "outcome"}),
		vendorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docpilot_vendor_request_duration_seconds",
			Help:    "Vendor API call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"capability"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docpilot_http_requests_total",
			Help: "HTTP requests served by method, route and status.",
		}, []string{"method", "route", "status"}),
		analysisFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docpilot_analysis_fallbacks_total",
			Help: "Contract analyses that fell back to the manual-review record.",
		}),
	}
	reg.MustRegister(
		m.vendorRequests,
		m.vendorDuration,
		m.httpRequests,
		m.analysisFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveVendorCall records one settled vendor call.
func (m *Metrics) ObserveVendorCall(capability, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.vendorRequests.WithLabelValues(capability, outcome).Inc()
	m.vendorDuration.WithLabelValues(capability).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// IncAnalysisFallback counts a fallback substitution.
func (m *Metrics) IncAnalysisFallback() {
	if m == nil {
		return
	}
	m.analysisFallbacks.Inc()
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
