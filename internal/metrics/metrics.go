// Package metrics exposes Prometheus counters and histograms for ingestion
// and statistics queries. A nil *Collector is valid and records nothing, so
// callers that do not care about metrics can pass nil.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry with all service metrics.
type Collector struct {
	registry *prometheus.Registry

	documentsIngested *prometheus.CounterVec
	rowsInserted      *prometheus.CounterVec
	ingestDuration    prometheus.Histogram

	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

// NewCollector creates a collector and registers every metric plus the Go
// runtime collector.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		documentsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_documents_ingested_total",
			Help: "Match documents processed by the loader, by outcome",
		}, []string{"outcome"}),

		rowsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_rows_inserted_total",
			Help: "Rows written by the loader, by table",
		}, []string{"table"}),

		ingestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cricket_document_ingest_duration_seconds",
			Help:    "Time to ingest one match document",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}),

		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_stats_queries_total",
			Help: "Statistics operations executed, by operation and status",
		}, []string{"operation", "status"}),

		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cricket_stats_query_duration_seconds",
			Help:    "Time spent executing statistics operations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}, []string{"operation"}),
	}

	registry.MustRegister(
		c.documentsIngested,
		c.rowsInserted,
		c.ingestDuration,
		c.queriesTotal,
		c.queryDuration,
		prometheus.NewGoCollector(),
	)
	return c
}

// DocumentIngested records one document outcome ("committed", "failed").
func (c *Collector) DocumentIngested(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.documentsIngested.WithLabelValues(outcome).Inc()
	c.ingestDuration.Observe(elapsed.Seconds())
}

// RowsInserted adds n rows written to table.
func (c *Collector) RowsInserted(table string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.rowsInserted.WithLabelValues(table).Add(float64(n))
}

// QueryObserved records one statistics operation and its result status.
func (c *Collector) QueryObserved(operation, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.queriesTotal.WithLabelValues(operation, status).Inc()
	c.queryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
