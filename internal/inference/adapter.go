package inference

import (
	"context"
	"fmt"
	"math"

	"aqi-predictor/internal/models"
)

// Adapter wraps a loaded model behind the fixed pollutant schema.
// The model is injected once and held for the adapter's lifetime.
type Adapter struct {
	model Model
}

// NewAdapter checks that the model was trained on the pollutant columns in
// the expected order. A reordered or renamed column set is rejected here
// instead of silently mispredicting later.
func NewAdapter(model Model) (*Adapter, error) {
	if model == nil {
		return nil, fmt.Errorf("inference adapter requires a model")
	}

	got := model.FeatureNames()
	if !sameNames(got, models.FeatureNames) {
		return nil, &models.SchemaMismatchError{
			Expected: models.FeatureNames,
			Got:      got,
			Message:  "model feature columns do not match the pollutant reading",
		}
	}

	return &Adapter{model: model}, nil
}

// Predict scores a reading and converts the raw output to an AQI value
func (a *Adapter) Predict(ctx context.Context, reading models.PollutantReading) (models.AQIPrediction, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	raw, err := a.model.Predict(reading.Features())
	if err != nil {
		return 0, fmt.Errorf("model prediction failed: %w", err)
	}

	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, &models.SchemaMismatchError{
			Expected: models.FeatureNames,
			Got:      a.model.FeatureNames(),
			Message:  fmt.Sprintf("model produced non-finite output %v", raw),
		}
	}

	return models.NewAQIPrediction(raw), nil
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
