package google

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics recorded by a Service.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	NotModifiedTotal *prometheus.CounterVec
	EntriesTotal     *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdata_requests_total",
				Help: "Total number of GData API requests",
			},
			[]string{"service", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gdata_request_duration_seconds",
				Help:    "Duration of GData API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method"},
		),
		NotModifiedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdata_not_modified_total",
				Help: "Total number of conditional requests answered with 304 Not Modified",
			},
			[]string{"service"},
		),
		EntriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdata_entries_parsed_total",
				Help: "Total number of entries parsed from feeds",
			},
			[]string{"service"},
		),
	}
}

// RecordRequest records a completed request. status is 0 on transport errors.
func (m *Metrics) RecordRequest(service, method string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(service, method, label).Inc()
	m.RequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordNotModified records a 304 response.
func (m *Metrics) RecordNotModified(service string) {
	m.NotModifiedTotal.WithLabelValues(service).Inc()
}

// RecordEntries records the number of entries parsed from one feed.
func (m *Metrics) RecordEntries(service string, n int) {
	m.EntriesTotal.WithLabelValues(service).Add(float64(n))
}
