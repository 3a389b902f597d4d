// Package observability provides metrics collection for the GameVault application.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry
	Populate *PopulateMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	populateMetrics, err := NewPopulateMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create populate metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		Populate: populateMetrics,
	}, nil
}

// Handler returns an HTTP handler exposing the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PopulateMetrics contains Prometheus metrics for population pipeline runs
type PopulateMetrics struct {
	itemsFetchedTotal *prometheus.CounterVec
	itemsSavedTotal   *prometheus.CounterVec
	itemsSkippedTotal *prometheus.CounterVec
	fetchRetriesTotal *prometheus.CounterVec
	runsTotal         *prometheus.CounterVec
	runDuration       *prometheus.HistogramVec
}

// NewPopulateMetrics creates and registers new population pipeline metrics
func NewPopulateMetrics(registry *prometheus.Registry) (*PopulateMetrics, error) {
	m := &PopulateMetrics{
		itemsFetchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "populate_items_fetched_total",
				Help: "Total number of items fetched from the external provider",
			},
			[]string{"kind"},
		),
		itemsSavedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "populate_items_saved_total",
				Help: "Total number of items persisted to the catalog",
			},
			[]string{"kind"},
		),
		itemsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "populate_items_skipped_total",
				Help: "Total number of items skipped during population",
			},
			[]string{"kind", "reason"},
		),
		fetchRetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "populate_fetch_retries_total",
				Help: "Total number of retried provider requests",
			},
			[]string{"resource"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "populate_runs_total",
				Help: "Total number of population runs",
			},
			[]string{"kind", "status"}, // status: success, failed
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "populate_run_duration_seconds",
				Help:    "Duration of population runs",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"kind"},
		),
	}

	collectors := []prometheus.Collector{
		m.itemsFetchedTotal,
		m.itemsSavedTotal,
		m.itemsSkippedTotal,
		m.fetchRetriesTotal,
		m.runsTotal,
		m.runDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordFetched adds fetched items for the given entity kind.
func (m *PopulateMetrics) RecordFetched(kind string, count int) {
	if m == nil {
		return
	}
	m.itemsFetchedTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordSaved adds saved items for the given entity kind.
func (m *PopulateMetrics) RecordSaved(kind string, count int) {
	if m == nil {
		return
	}
	m.itemsSavedTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordSkipped counts a skipped item with the reason it was skipped.
func (m *PopulateMetrics) RecordSkipped(kind, reason string) {
	if m == nil {
		return
	}
	m.itemsSkippedTotal.WithLabelValues(kind, reason).Inc()
}

// RecordRetry counts one retried request against a provider resource.
func (m *PopulateMetrics) RecordRetry(resource string) {
	if m == nil {
		return
	}
	m.fetchRetriesTotal.WithLabelValues(resource).Inc()
}

// RecordRun records the outcome and duration of a population run.
func (m *PopulateMetrics) RecordRun(kind, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(kind, status).Inc()
	m.runDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
