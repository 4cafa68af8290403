// Package metrics exposes Prometheus collectors for tree operations and the HTTP layer.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	mismatches       *prometheus.CounterVec
	uploadedBytes    prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	wsClients        prometheus.Gauge
}

// New registers every collector on a fresh registry together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drive_tree_operations_total",
				Help: "Tree operations by name and outcome",
			},
			[]string{"op", "result"}, // result: "ok" or an error kind
		),
		operationLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drive_tree_operation_duration_seconds",
				Help:    "Duration of tree operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		mismatches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drive_physical_mismatch_total",
				Help: "Physical entries found missing while metadata expected them",
			},
			[]string{"op"},
		),
		uploadedBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "drive_uploaded_bytes_total",
			Help: "Bytes written by uploads",
		}),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drive_http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		),
		httpLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drive_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		wsClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "drive_websocket_clients",
			Help: "Connected websocket clients",
		}),
	}
}

func (m *Metrics) ObserveOperation(op, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.operationLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) RecordMismatch(op string) {
	if m == nil {
		return
	}
	m.mismatches.WithLabelValues(op).Inc()
}

func (m *Metrics) AddUploadedBytes(n int64) {
	if m == nil {
		return
	}
	m.uploadedBytes.Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) SetWebsocketClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests that gather values directly.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
