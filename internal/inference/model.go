package inference

import (
	"fmt"

	"aqi-predictor/internal/models"
)

// Model is a loaded regression model. Implementations are immutable after
// load and safe for concurrent use.
type Model interface {
	// Kind names the artifact format, e.g. "linear"
	Kind() string
	// FeatureNames lists input columns in the order Predict expects
	FeatureNames() []string
	// Predict scores one feature vector
	Predict(features []float64) (float64, error)
}

// LinearModel is an ordinary least squares style regressor
type LinearModel struct {
	features     []string
	intercept    float64
	coefficients []float64
}

// NewLinearModel builds a linear model; coefficients align with features
func NewLinearModel(features []string, intercept float64, coefficients []float64) (*LinearModel, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("linear model has no features")
	}
	if len(coefficients) != len(features) {
		return nil, fmt.Errorf("linear model has %d coefficients for %d features", len(coefficients), len(features))
	}

	return &LinearModel{
		features:     append([]string(nil), features...),
		intercept:    intercept,
		coefficients: append([]float64(nil), coefficients...),
	}, nil
}

func (m *LinearModel) Kind() string { return KindLinear }

func (m *LinearModel) FeatureNames() []string {
	return append([]string(nil), m.features...)
}

func (m *LinearModel) Predict(features []float64) (float64, error) {
	if err := checkWidth(m.features, features); err != nil {
		return 0, err
	}

	y := m.intercept
	for i, x := range features {
		y += m.coefficients[i] * x
	}
	return y, nil
}

func checkWidth(names []string, features []float64) error {
	if len(features) != len(names) {
		return &models.SchemaMismatchError{
			Expected: names,
			Got:      []string{fmt.Sprintf("%d values", len(features))},
			Message:  fmt.Sprintf("model expects %d features, got %d", len(names), len(features)),
		}
	}
	return nil
}
