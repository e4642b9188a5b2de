package services

import (
	"context"
	"errors"
	"time"

	"aqi-predictor/internal/advisory"
	"aqi-predictor/internal/inference"
	"aqi-predictor/internal/models"
	"aqi-predictor/pkg/logging"
	"aqi-predictor/pkg/metrics"
)

// Predictor is the inference boundary the service depends on
type Predictor interface {
	Predict(ctx context.Context, reading models.PollutantReading) (models.AQIPrediction, error)
}

// PredictionService runs one prediction: infer, classify, build chart data
type PredictionService struct {
	predictor Predictor
	logger    *logging.ContextLogger
	metrics   *metrics.Collector
}

// PollutantBar is one bar of the pollutant concentration chart
type PollutantBar struct {
	Field    string  `json:"field"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Max      float64 `json:"max"`
	Fraction float64 `json:"fraction"`
}

// Gauge is the severity gauge for one prediction
type Gauge struct {
	Max      int                  `json:"max"`
	Position float64              `json:"position"`
	Steps    []advisory.GaugeStep `json:"steps"`
}

// PredictionResult is everything the rendering surface needs for one prediction
type PredictionResult struct {
	Reading  models.PollutantReading `json:"reading"`
	AQI      models.AQIPrediction    `json:"aqi"`
	Advisory advisory.Result         `json:"advisory"`
	Gauge    Gauge                   `json:"gauge"`
	Bars     []PollutantBar          `json:"bars"`
}

// NewPredictionService creates a new prediction service
func NewPredictionService(predictor Predictor, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *PredictionService {
	return &PredictionService{
		predictor: predictor,
		logger:    logger.WithFields(logging.Fields{"component": "prediction_service"}),
		metrics:   metricsCollector,
	}
}

// LoadModel performs the one-time artifact load and records how long it took.
// The returned error is a *models.ModelLoadError and must halt the caller.
func LoadModel(ctx context.Context, path string, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) (inference.Model, error) {
	logger.Info(ctx, "[MODEL_LOAD_START] Loading model artifact", logging.Fields{
		"path": path,
	})

	timer := metricsCollector.NewTimer(metricsCollector.ModelLoadDuration)
	model, err := inference.LoadModel(path)
	duration := timer.ObserveDuration()
	if err != nil {
		logger.Error(ctx, "[MODEL_LOAD_ERROR] Model artifact could not be loaded", logging.Fields{
			"path": path,
		}, err)
		return nil, err
	}

	metricsCollector.SetModelInfo(model.Kind(), path)
	logger.Info(ctx, "[MODEL_LOAD_COMPLETE] Model artifact loaded", logging.Fields{
		"path":        path,
		"kind":        model.Kind(),
		"features":    model.FeatureNames(),
		"duration_ms": duration.Milliseconds(),
	})

	return model, nil
}

// Predict scores an already clamped reading and classifies the result
func (s *PredictionService) Predict(ctx context.Context, reading models.PollutantReading) (*PredictionResult, error) {
	startTime := time.Now()

	s.logger.Debug(ctx, "[PREDICT_START] Scoring pollutant reading", logging.Fields{
		"pm25": reading.PM25,
		"pm10": reading.PM10,
		"no2":  reading.NO2,
		"so2":  reading.SO2,
	})

	timer := s.metrics.NewTimer(s.metrics.InferenceDuration)
	aqi, err := s.predictor.Predict(ctx, reading)
	timer.ObserveDuration()
	if err != nil {
		var schemaErr *models.SchemaMismatchError
		if errors.As(err, &schemaErr) {
			s.metrics.SchemaMismatchTotal.Inc()
		}
		s.logger.Error(ctx, "[PREDICT_ERROR] Prediction failed", logging.Fields{
			"stage": "INFERENCE",
		}, err)
		return nil, err
	}

	result := &PredictionResult{
		Reading:  reading,
		AQI:      aqi,
		Advisory: advisory.Classify(aqi),
		Gauge: Gauge{
			Max:      advisory.GaugeMax,
			Position: advisory.GaugePosition(aqi),
			Steps:    advisory.GaugeSteps(),
		},
		Bars: BuildBars(reading),
	}

	s.metrics.RecordPrediction(string(result.Advisory.Category), aqi.Int())

	s.logger.Info(ctx, "[PREDICT_COMPLETE] AQI predicted", logging.Fields{
		"aqi":         aqi.Int(),
		"category":    result.Advisory.Category,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	return result, nil
}

// Classify returns the advisory for a known AQI without running the model
func (s *PredictionService) Classify(ctx context.Context, aqi models.AQIPrediction) advisory.Result {
	result := advisory.Classify(aqi)

	s.logger.Debug(ctx, "[CLASSIFY] Advisory resolved", logging.Fields{
		"aqi":      aqi.Int(),
		"category": result.Category,
	})

	return result
}

// BuildBars lays out the pollutant concentration chart in feature order
func BuildBars(reading models.PollutantReading) []PollutantBar {
	bounds := models.Bounds()
	bars := make([]PollutantBar, 0, len(bounds))

	for _, b := range bounds {
		value, _ := reading.Value(b.Field)
		fraction := 0.0
		if b.Max > 0 {
			fraction = value / b.Max
		}
		if fraction < 0 {
			fraction = 0
		} else if fraction > 1 {
			fraction = 1
		}

		bars = append(bars, PollutantBar{
			Field:    b.Field,
			Label:    b.Label,
			Value:    value,
			Max:      b.Max,
			Fraction: fraction,
		})
	}

	return bars
}
