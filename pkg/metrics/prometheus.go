package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal   *prometheus.CounterVec
	cacheTotal     *prometheus.CounterVec
	tickerFailures prometheus.Counter
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idxsignal_fetches_total",
				Help: "Total number of upstream bar fetches by outcome",
			},
			[]string{"status"},
		),
		cacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idxsignal_cache_requests_total",
				Help: "Total number of bar cache lookups by result",
			},
			[]string{"result"},
		),
		tickerFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "idxsignal_screener_ticker_failures_total",
				Help: "Total number of tickers dropped from screener batches",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "idxsignal_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records an upstream fetch outcome ("ok" or "error").
func (r *Recorder) RecordFetch(status string) {
	r.fetchesTotal.WithLabelValues(status).Inc()
}

// RecordCacheResult records a cache lookup result ("hit", "miss" or "error").
func (r *Recorder) RecordCacheResult(result string) {
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordTickerFailure records a ticker dropped from a screener batch.
func (r *Recorder) RecordTickerFailure() {
	r.tickerFailures.Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
