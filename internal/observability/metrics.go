package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for the console REST layer.
type Metrics struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	outcomesTotal      *prometheus.CounterVec
	unmappedTypesTotal *prometheus.CounterVec
	challengesTotal    *prometheus.CounterVec
	registry           *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "console"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rest",
			Name:      "requests_total",
			Help:      "Total number of REST calls issued against the management server",
		},
		[]string{"transport", "method", "status"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rest",
			Name:      "request_duration_seconds",
			Help:      "REST call duration in seconds",
			Buckets: []float64{
				.001, .005, .01, .025, .05,
				.1, .25, .5, 1, 2.5, 5, 10,
			},
		},
		[]string{"transport", "method"},
	)

	m.outcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rest",
			Name:      "outcomes_total",
			Help:      "Normalized outcomes by failure kind",
		},
		[]string{"kind"},
	)

	m.unmappedTypesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "encoding",
			Name:      "unmapped_content_type_total",
			Help:      "Content types that have no wire representation",
		},
		[]string{"content_type"},
	)

	m.challengesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "challenges_total",
			Help:      "Authentication challenges answered by the challenge/response client",
		},
		[]string{"scheme"},
	)

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.outcomesTotal,
		m.unmappedTypesTotal,
		m.challengesTotal,
	)

	return m
}

// RecordRequest records one issued REST call. A zero status means the call
// never produced a response.
func (m *Metrics) RecordRequest(transport, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(transport, method, statusLabel).Inc()
	m.requestDuration.WithLabelValues(transport, method).Observe(duration.Seconds())
}

// RecordOutcome records a normalized outcome.
func (m *Metrics) RecordOutcome(kind string) {
	if m == nil {
		return
	}
	m.outcomesTotal.WithLabelValues(kind).Inc()
}

// RecordUnmappedContentType records a content type without wire representation.
func (m *Metrics) RecordUnmappedContentType(contentType string) {
	if m == nil {
		return
	}
	m.unmappedTypesTotal.WithLabelValues(contentType).Inc()
}

// RecordChallenge records an answered authentication challenge.
func (m *Metrics) RecordChallenge(scheme string) {
	if m == nil {
		return
	}
	m.challengesTotal.WithLabelValues(scheme).Inc()
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes the registry in the text exposition format, for the
// node exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
