package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsMatched *prometheus.CounterVec
	predictions *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	accuracy    *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rowsMatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_rows_matched_total",
				Help: "Total number of news rows matched to price bars",
			},
			[]string{"symbol"},
		),
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_predictions_total",
				Help: "Total number of predictions served",
			},
			[]string{"direction"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		accuracy: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_model_accuracy",
				Help: "Accuracy of the most recently trained model per split",
			},
			[]string{"split"},
		),
	}
}

// RecordRowsMatched records news rows matched to bars for a symbol.
func (r *Recorder) RecordRowsMatched(symbol string, count int) {
	r.rowsMatched.WithLabelValues(symbol).Add(float64(count))
}

// RecordPrediction records a served prediction by direction label.
func (r *Recorder) RecordPrediction(direction string) {
	r.predictions.WithLabelValues(direction).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordAccuracy records model accuracy for a data split.
func (r *Recorder) RecordAccuracy(split string, value float64) {
	r.accuracy.WithLabelValues(split).Set(value)
}
