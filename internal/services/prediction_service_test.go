package services

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"aqi-predictor/internal/advisory"
	"aqi-predictor/internal/inference"
	"aqi-predictor/internal/models"
	"aqi-predictor/pkg/logging"
	"aqi-predictor/pkg/metrics"
)

// fixedModel always returns the same raw score
type fixedModel struct {
	value float64
}

func (m fixedModel) Kind() string           { return "fixed" }
func (m fixedModel) FeatureNames() []string { return models.FeatureNames }
func (m fixedModel) Predict(features []float64) (float64, error) {
	return m.value, nil
}

// failingPredictor fails every prediction with err
type failingPredictor struct {
	err error
}

func (p failingPredictor) Predict(ctx context.Context, reading models.PollutantReading) (models.AQIPrediction, error) {
	return 0, p.err
}

func newTestDeps() (*logging.StructuredLogger, *metrics.Collector, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger("aqi-test", "0.0.1", logging.DebugLevel)
	logger.SetOutput(&buf)
	return logger, metrics.NewCollector("aqi_test", prometheus.NewRegistry()), &buf
}

func newServiceWithModel(t *testing.T, raw float64) (*PredictionService, *metrics.Collector) {
	t.Helper()

	adapter, err := inference.NewAdapter(fixedModel{value: raw})
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	logger, collector, _ := newTestDeps()
	return NewPredictionService(adapter, logger, collector), collector
}

func TestPredictionService_Scenarios(t *testing.T) {
	reading := models.PollutantReading{PM25: 80, PM10: 140, NO2: 40, SO2: 15}

	tests := []struct {
		name       string
		raw        float64
		wantAQI    models.AQIPrediction
		wantLabel  string
		wantColor  string
		wantPoints int
	}{
		{"acceptable", 92, 92, "Acceptable Air Quality", advisory.ColorLightBlue, 3},
		{"severe", 305, 305, "Severe Air Emergency", advisory.ColorRed, 4},
		{"rounding crosses boundary", 50.5, 51, "Acceptable Air Quality", advisory.ColorLightBlue, 3},
		{"rounding stays below boundary", 50.4, 50, "Excellent Air Quality", advisory.ColorGreen, 3},
		{"output beyond int range", 1e19, models.AQIPrediction(math.MaxInt), "Severe Air Emergency", advisory.ColorRed, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, collector := newServiceWithModel(t, tt.raw)

			result, err := svc.Predict(context.Background(), reading)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}

			if result.AQI != tt.wantAQI {
				t.Errorf("AQI = %v, want %v", result.AQI, tt.wantAQI)
			}
			if result.Advisory.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", result.Advisory.Label, tt.wantLabel)
			}
			if result.Advisory.ColorToken != tt.wantColor {
				t.Errorf("ColorToken = %q, want %q", result.Advisory.ColorToken, tt.wantColor)
			}
			if len(result.Advisory.Points) != tt.wantPoints {
				t.Errorf("len(Points) = %d, want %d", len(result.Advisory.Points), tt.wantPoints)
			}
			if result.Reading != reading {
				t.Errorf("Reading = %+v, want %+v", result.Reading, reading)
			}

			category := string(result.Advisory.Category)
			if got := testutil.ToFloat64(collector.PredictionsTotal.WithLabelValues(category)); got != 1 {
				t.Errorf("predictions_total{category=%s} = %v, want 1", category, got)
			}
		})
	}
}

func TestPredictionService_Gauge(t *testing.T) {
	svc, _ := newServiceWithModel(t, 250)

	result, err := svc.Predict(context.Background(), models.DefaultReading())
	if err != nil {
		t.Fatal(err)
	}

	if result.Gauge.Max != advisory.GaugeMax {
		t.Errorf("Gauge.Max = %d, want %d", result.Gauge.Max, advisory.GaugeMax)
	}
	if result.Gauge.Position != 0.5 {
		t.Errorf("Gauge.Position = %v, want 0.5", result.Gauge.Position)
	}
	if len(result.Gauge.Steps) != 5 {
		t.Errorf("len(Gauge.Steps) = %d, want 5", len(result.Gauge.Steps))
	}
}

func TestPredictionService_SchemaMismatch(t *testing.T) {
	logger, collector, logs := newTestDeps()
	schemaErr := &models.SchemaMismatchError{Expected: models.FeatureNames, Message: "bad shape"}
	svc := NewPredictionService(failingPredictor{err: schemaErr}, logger, collector)

	_, err := svc.Predict(context.Background(), models.DefaultReading())

	var got *models.SchemaMismatchError
	if !errors.As(err, &got) {
		t.Fatalf("error = %v, want *models.SchemaMismatchError", err)
	}
	if n := testutil.ToFloat64(collector.SchemaMismatchTotal); n != 1 {
		t.Errorf("schema_mismatch_total = %v, want 1", n)
	}
	if !bytes.Contains(logs.Bytes(), []byte("[PREDICT_ERROR]")) {
		t.Error("failed prediction should be logged")
	}
	if !bytes.Contains(logs.Bytes(), []byte(`"component":"prediction_service"`)) {
		t.Errorf("service logs should carry the component field: %s", logs.String())
	}
}

func TestPredictionService_Classify(t *testing.T) {
	logger, collector, _ := newTestDeps()
	svc := NewPredictionService(failingPredictor{}, logger, collector)

	if got := svc.Classify(context.Background(), 150); got.Category != advisory.CategoryModerate {
		t.Errorf("Classify(150).Category = %s, want moderate", got.Category)
	}
}

func TestBuildBars(t *testing.T) {
	bars := BuildBars(models.PollutantReading{PM25: 250, PM10: 600, NO2: 0, SO2: 50})

	if len(bars) != 4 {
		t.Fatalf("len(bars) = %d, want 4", len(bars))
	}

	want := []struct {
		label    string
		fraction float64
	}{
		{"PM2.5", 0.5},
		{"PM10", 1},
		{"NO₂", 0},
		{"SO₂", 0.25},
	}
	for i, w := range want {
		if bars[i].Label != w.label {
			t.Errorf("bars[%d].Label = %q, want %q", i, bars[i].Label, w.label)
		}
		if bars[i].Fraction != w.fraction {
			t.Errorf("bars[%d].Fraction = %v, want %v", i, bars[i].Fraction, w.fraction)
		}
	}
}

func TestLoadModel(t *testing.T) {
	logger, collector, logs := newTestDeps()

	t.Run("missing artifact", func(t *testing.T) {
		_, err := LoadModel(context.Background(), filepath.Join(t.TempDir(), "aqi_model.json"), logger, collector)

		var loadErr *models.ModelLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("error = %v, want *models.ModelLoadError", err)
		}
		if !bytes.Contains(logs.Bytes(), []byte("[MODEL_LOAD_ERROR]")) {
			t.Error("load failure should be logged")
		}
	})

	t.Run("valid artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aqi_model.json")
		artifact := `{"kind":"linear","feature_names":["pm25","pm10","no2","so2"],"intercept":0,"coefficients":[1,0,0,0]}`
		if err := os.WriteFile(path, []byte(artifact), 0o600); err != nil {
			t.Fatal(err)
		}

		model, err := LoadModel(context.Background(), path, logger, collector)
		if err != nil {
			t.Fatalf("LoadModel() error = %v", err)
		}
		if model.Kind() != inference.KindLinear {
			t.Errorf("Kind() = %s, want linear", model.Kind())
		}
		if got := testutil.ToFloat64(collector.ModelInfo.WithLabelValues(inference.KindLinear, path)); got != 1 {
			t.Errorf("model_info = %v, want 1", got)
		}
	})
}
