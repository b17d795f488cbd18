// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Conversion metrics
	RowsConverted *prometheus.CounterVec
	RowsSkipped   *prometheus.CounterVec

	// Ingest metrics
	RecordsDecoded *prometheus.CounterVec
	DecodeErrors   *prometheus.CounterVec

	// Join metrics
	PairsAligned     prometheus.Counter
	UnmatchedRecords *prometheus.CounterVec
	JoinTerminations *prometheus.CounterVec

	// Aggregation metrics
	ProfilesComputed  *prometheus.CounterVec
	AggregationErrors *prometheus.CounterVec
	ProfileDuration   *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "energy_value_lab"
	}

	return &Metrics{
		RowsConverted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "convert",
			Name:      "rows_converted_total",
			Help:      "Total number of raw rows converted, by dataset",
		}, []string{"dataset"}),
		RowsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "convert",
			Name:      "rows_skipped_total",
			Help:      "Total number of raw rows skipped as undecodable, by dataset",
		}, []string{"dataset"}),

		RecordsDecoded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "records_decoded_total",
			Help:      "Total number of canonical records decoded, by dataset",
		}, []string{"dataset"}),
		DecodeErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "decode_errors_total",
			Help:      "Total number of canonical record decode errors, by dataset",
		}, []string{"dataset"}),

		PairsAligned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "join",
			Name:      "pairs_aligned_total",
			Help:      "Total number of timestamp-aligned pairs emitted",
		}),
		UnmatchedRecords: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "join",
			Name:      "unmatched_records_total",
			Help:      "Total number of records dropped without a counterpart, by side",
		}, []string{"side"}),
		JoinTerminations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "join",
			Name:      "early_terminations_total",
			Help:      "Total number of joins ended early by a decode or ordering error, by side",
		}, []string{"side"}),

		ProfilesComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "profiles_computed_total",
			Help:      "Total number of profiles computed, by kind",
		}, []string{"kind"}),
		AggregationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "errors_total",
			Help:      "Total number of failed aggregation passes, by kind",
		}, []string{"kind"}),
		ProfileDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "profile_duration_seconds",
			Help:      "Profile computation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRowsConverted adds to the converted-row counter for a dataset.
func RecordRowsConverted(dataset string, n int) {
	DefaultMetrics.RowsConverted.WithLabelValues(dataset).Add(float64(n))
}

// RecordRowsSkipped adds to the skipped-row counter for a dataset.
func RecordRowsSkipped(dataset string, n int) {
	DefaultMetrics.RowsSkipped.WithLabelValues(dataset).Add(float64(n))
}

// RecordRecordDecoded increments the decoded-record counter for a dataset.
func RecordRecordDecoded(dataset string) {
	DefaultMetrics.RecordsDecoded.WithLabelValues(dataset).Inc()
}

// RecordDecodeError increments the decode-error counter for a dataset.
func RecordDecodeError(dataset string) {
	DefaultMetrics.DecodeErrors.WithLabelValues(dataset).Inc()
}

// RecordPairAligned increments the aligned-pair counter.
func RecordPairAligned() {
	DefaultMetrics.PairsAligned.Inc()
}

// RecordUnmatched increments the unmatched-record counter for a side.
func RecordUnmatched(side string) {
	DefaultMetrics.UnmatchedRecords.WithLabelValues(side).Inc()
}

// RecordJoinTerminated increments the early-termination counter for a side.
func RecordJoinTerminated(side string) {
	DefaultMetrics.JoinTerminations.WithLabelValues(side).Inc()
}

// RecordProfile records one profile computation.
func RecordProfile(kind string, seconds float64, err error) {
	if err != nil {
		DefaultMetrics.AggregationErrors.WithLabelValues(kind).Inc()
		return
	}
	DefaultMetrics.ProfilesComputed.WithLabelValues(kind).Inc()
	DefaultMetrics.ProfileDuration.WithLabelValues(kind).Observe(seconds)
}
