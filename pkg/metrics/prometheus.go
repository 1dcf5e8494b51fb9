package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analysesTotal   *prometheus.CounterVec
	signalsTotal    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	confluenceScore *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendpulse_analyses_total",
				Help: "Total number of analysis runs by trigger source",
			},
			[]string{"source"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendpulse_signal_events_total",
				Help: "Total number of detected signal events",
			},
			[]string{"system", "type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		confluenceScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trendpulse_confluence_score",
				Help: "Latest confluence score for a ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis records one completed analysis run.
func (r *Recorder) RecordAnalysis(source string) {
	r.analysesTotal.WithLabelValues(source).Inc()
}

// RecordSignal records one detected signal event.
func (r *Recorder) RecordSignal(system, signalType string) {
	r.signalsTotal.WithLabelValues(system, signalType).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordConfluence records the latest confluence score for a ticker.
func (r *Recorder) RecordConfluence(ticker string, score float64) {
	r.confluenceScore.WithLabelValues(ticker).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
