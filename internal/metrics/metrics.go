// Package metrics exports Optio pipeline and HTTP events as Prometheus
// collectors. A Metrics value implements both observability hook
// interfaces and is registered at startup by the serve command.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/optio/pkg/observability"
)

const namespace = "optio"

// Operation label values.
const (
	opEncrypt = "encrypt"
	opDecrypt = "decrypt"
)

// Metrics holds the collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	OperationsTotal  *prometheus.CounterVec
	OperationSeconds *prometheus.HistogramVec
	RequestsTotal    *prometheus.CounterVec
	InFlight         prometheus.Gauge
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Pipeline operations by kind and result.",
		}, []string{"op", "result"}),
		OperationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_seconds",
			Help:      "Duration of pipeline operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"op"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}
	m.registry.MustRegister(
		m.OperationsTotal,
		m.OperationSeconds,
		m.RequestsTotal,
		m.InFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Install registers m as the process-wide pipeline and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetHTTPHooks(m)
}

func (m *Metrics) OnEncryptStart(context.Context, int) {}

func (m *Metrics) OnEncryptComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.observe(opEncrypt, d, err)
}

func (m *Metrics) OnDecryptStart(context.Context, int) {}

func (m *Metrics) OnDecryptComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.observe(opDecrypt, d, err)
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.InFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	m.InFlight.Dec()
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) observe(op string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.OperationsTotal.WithLabelValues(op, result).Inc()
	m.OperationSeconds.WithLabelValues(op).Observe(d.Seconds())
}
