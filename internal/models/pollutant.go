package models

import (
	"fmt"
	"math"
)

// Feature names in the column order the regression model was trained on.
const (
	FieldPM25 = "pm25"
	FieldPM10 = "pm10"
	FieldNO2  = "no2"
	FieldSO2  = "so2"
)

// FeatureNames lists the model input columns in training order.
// PollutantReading.Features returns values in exactly this order.
var FeatureNames = []string{FieldPM25, FieldPM10, FieldNO2, FieldSO2}

// PollutantReading holds the four concentrations (µg/m³) fed to the model.
// Field order matches FeatureNames.
type PollutantReading struct {
	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
}

// FieldBounds describes the accepted range and form default of one pollutant
type FieldBounds struct {
	Field   string  `json:"field"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

var fieldBounds = []FieldBounds{
	{Field: FieldPM25, Label: "PM2.5", Min: 0, Max: 500, Default: 80},
	{Field: FieldPM10, Label: "PM10", Min: 0, Max: 600, Default: 140},
	{Field: FieldNO2, Label: "NO₂", Min: 0, Max: 300, Default: 40},
	{Field: FieldSO2, Label: "SO₂", Min: 0, Max: 200, Default: 15},
}

// Bounds returns the per-field range table in feature order
func Bounds() []FieldBounds {
	out := make([]FieldBounds, len(fieldBounds))
	copy(out, fieldBounds)
	return out
}

// DefaultReading returns the reading the input form starts with
func DefaultReading() PollutantReading {
	return PollutantReading{PM25: 80, PM10: 140, NO2: 40, SO2: 15}
}

// Features returns the reading as a model input vector in training order
func (r PollutantReading) Features() []float64 {
	return []float64{r.PM25, r.PM10, r.NO2, r.SO2}
}

// Value returns the concentration for a feature name
func (r PollutantReading) Value(field string) (float64, bool) {
	switch field {
	case FieldPM25:
		return r.PM25, true
	case FieldPM10:
		return r.PM10, true
	case FieldNO2:
		return r.NO2, true
	case FieldSO2:
		return r.SO2, true
	default:
		return 0, false
	}
}

// Clamp pulls every field into its valid range and reports which fields moved.
// NaN is treated as the field minimum.
func (r PollutantReading) Clamp() (PollutantReading, []string) {
	values := []*float64{&r.PM25, &r.PM10, &r.NO2, &r.SO2}
	var clamped []string

	for i, b := range fieldBounds {
		v := *values[i]
		switch {
		case math.IsNaN(v) || v < b.Min:
			*values[i] = b.Min
		case v > b.Max:
			*values[i] = b.Max
		default:
			continue
		}
		clamped = append(clamped, b.Field)
	}

	return r, clamped
}

// FromFeatures builds a reading from a named feature map.
// The key set must be exactly FeatureNames.
func FromFeatures(values map[string]float64) (PollutantReading, error) {
	if len(values) != len(FeatureNames) {
		return PollutantReading{}, &SchemaMismatchError{
			Expected: FeatureNames,
			Got:      sortedKeys(values),
			Message:  fmt.Sprintf("expected %d features, got %d", len(FeatureNames), len(values)),
		}
	}

	ordered := make([]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		v, ok := values[name]
		if !ok {
			return PollutantReading{}, &SchemaMismatchError{
				Expected: FeatureNames,
				Got:      sortedKeys(values),
				Message:  fmt.Sprintf("missing feature %q", name),
			}
		}
		ordered[i] = v
	}

	return PollutantReading{PM25: ordered[0], PM10: ordered[1], NO2: ordered[2], SO2: ordered[3]}, nil
}

// AQIPrediction is a non-negative integer AQI value
type AQIPrediction int

// NewAQIPrediction converts a raw model output to an AQI value.
// Rounds half up; negative and NaN outputs floor at zero, outputs past
// the int range saturate at math.MaxInt.
func NewAQIPrediction(raw float64) AQIPrediction {
	rounded := math.Floor(raw + 0.5)
	switch {
	case math.IsNaN(rounded) || rounded < 0:
		return 0
	case rounded >= math.MaxInt:
		return AQIPrediction(math.MaxInt)
	}
	return AQIPrediction(rounded)
}

// Int returns the prediction as a plain int
func (p AQIPrediction) Int() int {
	return int(p)
}
