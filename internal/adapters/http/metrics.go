package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/strops/pkg/core"
)

// Metrics counts operations per outcome. It implements core.Observer and
// owns its registry so several servers can coexist in one process.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strops_operations_total",
				Help: "Number of text operations applied, by operation and status.",
			},
			[]string{"operation", "status"},
		),
	}
	m.registry.MustRegister(m.operations)
	return m
}

// Observed implements core.Observer.
func (m *Metrics) Observed(op core.Operation, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(string(op), status).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var _ core.Observer = (*Metrics)(nil)
