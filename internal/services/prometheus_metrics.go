package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	registry             *prometheus.Registry
	operationsTotal      *prometheus.CounterVec
	operationDuration    *prometheus.HistogramVec
	operationAmount      *prometheus.HistogramVec
	authenticationEvents *prometheus.CounterVec
}

// NewPrometheusMetrics registers the bank metrics on registry.
// A nil registry gets a fresh one.
func NewPrometheusMetrics(registry *prometheus.Registry) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_operations_total",
				Help: "Total number of account operations by outcome",
			},
			[]string{"operation", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_operation_duration_seconds",
				Help:    "Account operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"operation"},
		),
		operationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_operation_amount",
				Help:    "Amounts moved by balance-changing operations",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
			[]string{"operation"},
		),
		authenticationEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_authentication_events_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"event_type"},
		),
	}
}

// Registry exposes the registry the metrics are registered on
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the node_exporter textfile format
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]

	switch name {
	case "operation.success":
		m.operationsTotal.WithLabelValues(operation, "success").Inc()
	case "operation.failed":
		m.operationsTotal.WithLabelValues(operation, "failed_"+tags["reason"]).Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEvents.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.operationDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "operation_amount":
		m.operationAmount.WithLabelValues(tags["operation"]).Observe(value)
	}
}
