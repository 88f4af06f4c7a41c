package provisioning

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records run-level counters for a deploy or remove pass.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	resourcesCreated *prometheus.CounterVec
	createFailures   *prometheus.CounterVec
	resourcesDeleted *prometheus.CounterVec
	apiRetries       *prometheus.CounterVec
	waits            *prometheus.CounterVec
	phaseDuration    *prometheus.HistogramVec
}

// NewMetrics creates a metrics set on its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resourcesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcdeploy",
				Subsystem: "deploy",
				Name:      "resources_created_total",
				Help:      "Resources created and registered in the ledger by type",
			},
			[]string{"type"},
		),
		createFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcdeploy",
				Subsystem: "deploy",
				Name:      "create_failures_total",
				Help:      "Failed create attempts by type",
			},
			[]string{"type"},
		),
		resourcesDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcdeploy",
				Subsystem: "teardown",
				Name:      "resources_total",
				Help:      "Teardown outcomes by type and result",
			},
			[]string{"type", "result"},
		),
		apiRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcdeploy",
				Subsystem: "api",
				Name:      "retries_total",
				Help:      "Retried control-plane API requests by command",
			},
			[]string{"command"},
		),
		waits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcdeploy",
				Subsystem: "wait",
				Name:      "total",
				Help:      "Convergence waits by target and outcome",
			},
			[]string{"target", "result"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dcdeploy",
				Subsystem: "pipeline",
				Name:      "phase_duration_seconds",
				Help:      "Duration of pipeline phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3.4min
			},
			[]string{"phase", "result"},
		),
	}

	m.registry.MustRegister(
		m.resourcesCreated,
		m.createFailures,
		m.resourcesDeleted,
		m.apiRetries,
		m.waits,
		m.phaseDuration,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordCreated counts a registered resource.
func (m *Metrics) RecordCreated(typ ResourceType) {
	if m == nil {
		return
	}
	m.resourcesCreated.WithLabelValues(string(typ)).Inc()
}

// RecordCreateFailure counts a failed create.
func (m *Metrics) RecordCreateFailure(typ ResourceType) {
	if m == nil {
		return
	}
	m.createFailures.WithLabelValues(string(typ)).Inc()
}

// RecordDeleted counts a teardown outcome.
func (m *Metrics) RecordDeleted(typ ResourceType, ok bool) {
	if m == nil {
		return
	}
	result := "deleted"
	if !ok {
		result = "failed"
	}
	m.resourcesDeleted.WithLabelValues(string(typ), result).Inc()
}

// RecordAPIRetry counts a retried API request.
func (m *Metrics) RecordAPIRetry(command string) {
	if m == nil {
		return
	}
	m.apiRetries.WithLabelValues(command).Inc()
}

// RecordWait counts a finished convergence wait.
func (m *Metrics) RecordWait(target string, converged bool) {
	if m == nil {
		return
	}
	result := "converged"
	if !converged {
		result = "gave_up"
	}
	m.waits.WithLabelValues(target, result).Inc()
}

// ObservePhase records a phase duration.
func (m *Metrics) ObservePhase(phase string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.phaseDuration.WithLabelValues(phase, result).Observe(seconds)
}

// WriteTextfile writes all metrics in the text exposition format, for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
