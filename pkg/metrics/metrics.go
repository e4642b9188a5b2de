package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIErrorsTotal     *prometheus.CounterVec

	// Prediction Metrics
	PredictionsTotal    *prometheus.CounterVec
	PredictedAQI        prometheus.Histogram
	InferenceDuration   prometheus.Histogram
	SchemaMismatchTotal prometheus.Counter
	ClampedInputsTotal  *prometheus.CounterVec

	// Model Metrics
	ModelLoadDuration prometheus.Histogram
	ModelInfo         *prometheus.GaugeVec
}

// NewCollector creates a metrics collector registered on reg.
// Pass prometheus.DefaultRegisterer to expose the metrics on promhttp.Handler().
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
			},
			[]string{"endpoint"},
		),

		APIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors by type",
			},
			[]string{"error_type", "endpoint"},
		),

		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Total number of AQI predictions by advisory category",
			},
			[]string{"category"},
		),

		PredictedAQI: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "predicted_aqi",
				Help:      "Distribution of predicted AQI values",
				Buckets:   []float64{50, 100, 200, 300, 400, 500},
			},
		),

		InferenceDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "inference_duration_seconds",
				Help:      "Duration of a single model prediction in seconds",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
		),

		SchemaMismatchTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schema_mismatch_total",
				Help:      "Predictions aborted because the feature shape did not match the model",
			},
		),

		ClampedInputsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clamped_inputs_total",
				Help:      "Pollutant inputs clamped into their valid range by field",
			},
			[]string{"field"},
		),

		ModelLoadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "model_load_duration_seconds",
				Help:      "Duration of the one-time model artifact load in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
			},
		),

		ModelInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "model_info",
				Help:      "Loaded model artifact, always 1",
			},
			[]string{"kind", "path"},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordAPIRequest increments API request counter
func (c *Collector) RecordAPIRequest(endpoint, method, status string) {
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordAPIError increments API error counter
func (c *Collector) RecordAPIError(errorType, endpoint string) {
	c.APIErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordPrediction counts a prediction under its category and observes the value
func (c *Collector) RecordPrediction(category string, aqi int) {
	c.PredictionsTotal.WithLabelValues(category).Inc()
	c.PredictedAQI.Observe(float64(aqi))
}

// RecordClamped counts pollutant fields that were clamped at the input surface
func (c *Collector) RecordClamped(fields []string) {
	for _, field := range fields {
		c.ClampedInputsTotal.WithLabelValues(field).Inc()
	}
}

// SetModelInfo marks the loaded model artifact
func (c *Collector) SetModelInfo(kind, path string) {
	c.ModelInfo.WithLabelValues(kind, path).Set(1)
}
