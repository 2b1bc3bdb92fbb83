package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the collectors the API exports on /metrics.
type Metrics struct {
	Registry       *prometheus.Registry
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	DBCalls        *prometheus.CounterVec
	DBCallDuration *prometheus.HistogramVec
}

// New builds a fresh registry with process and Go collectors plus the API's own.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hr",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "db",
			Name:      "calls_total",
			Help:      "Database calls by routine and outcome.",
		}, []string{"routine", "outcome"}),
		DBCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hr",
			Subsystem: "db",
			Name:      "call_duration_seconds",
			Help:      "Database call latency by routine.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"routine"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.DBCalls,
		m.DBCallDuration,
	)
	return m
}

// ObserveDBCall records one database call. A nil receiver is a no-op.
func (m *Metrics) ObserveDBCall(routine, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.DBCalls.WithLabelValues(routine, outcome).Inc()
	m.DBCallDuration.WithLabelValues(routine).Observe(seconds)
}
