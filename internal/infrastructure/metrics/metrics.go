// Package metrics exposes Prometheus collectors for HTTP traffic and chore
// lifecycle events. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	taskTransitions  *prometheus.CounterVec
	provisionedItems *prometheus.CounterVec
	dashboardQueries *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		taskTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_transitions_total",
				Help: "Task lifecycle transitions by outcome",
			},
			[]string{"transition", "outcome"},
		),
		provisionedItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provisioned_items_total",
				Help: "Bulk provisioning item results by status code",
			},
			[]string{"status"},
		),
		dashboardQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_queries_total",
				Help: "Dashboard section queries",
			},
			[]string{"section"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.taskTransitions,
		m.provisionedItems,
		m.dashboardQueries,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) TaskTransition(transition, outcome string) {
	if m == nil {
		return
	}
	m.taskTransitions.WithLabelValues(transition, outcome).Inc()
}

func (m *Metrics) ProvisionedItem(status int) {
	if m == nil {
		return
	}
	m.provisionedItems.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *Metrics) DashboardQuery(section string) {
	if m == nil {
		return
	}
	m.dashboardQueries.WithLabelValues(section).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
