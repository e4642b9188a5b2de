package inference

import (
	"fmt"

	"github.com/dmitryikh/leaves"
)

// Saved-model formats accepted for tree ensembles
const (
	FormatLightGBM = "lightgbm"
	FormatXGBoost  = "xgboost"
	FormatSklearn  = "sklearn"
)

// ensemble is the part of *leaves.Ensemble used for scoring
type ensemble interface {
	Name() string
	NFeatures() int
	NOutputGroups() int
	PredictSingle(fvals []float64, nEstimators int) float64
}

// TreeEnsemble is a gradient boosted tree regressor trained by LightGBM,
// XGBoost or scikit-learn. The column names come from the manifest since
// the toolkits' model files only index features by position.
type TreeEnsemble struct {
	features []string
	ensemble ensemble
}

// LoadTreeEnsemble reads a toolkit model file in the given format.
// Scores are raw margins; no output transformation is applied.
func LoadTreeEnsemble(format, path string, features []string) (*TreeEnsemble, error) {
	var (
		e   *leaves.Ensemble
		err error
	)
	switch format {
	case FormatLightGBM:
		e, err = leaves.LGEnsembleFromFile(path, false)
	case FormatXGBoost:
		e, err = leaves.XGEnsembleFromFile(path, false)
	case FormatSklearn:
		e, err = leaves.SKEnsembleFromFile(path, false)
	default:
		return nil, fmt.Errorf("unknown ensemble format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s model %s: %w", format, path, err)
	}

	return newTreeEnsemble(features, e)
}

func newTreeEnsemble(features []string, e ensemble) (*TreeEnsemble, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("tree ensemble has no features")
	}
	if groups := e.NOutputGroups(); groups != 1 {
		return nil, fmt.Errorf("%s has %d output groups, a regressor has 1", e.Name(), groups)
	}
	if n := e.NFeatures(); n != len(features) {
		return nil, fmt.Errorf("%s was trained on %d features, manifest names %d", e.Name(), n, len(features))
	}

	return &TreeEnsemble{
		features: append([]string(nil), features...),
		ensemble: e,
	}, nil
}

func (m *TreeEnsemble) Kind() string { return KindTreeEnsemble }

func (m *TreeEnsemble) FeatureNames() []string {
	return append([]string(nil), m.features...)
}

func (m *TreeEnsemble) Predict(features []float64) (float64, error) {
	if err := checkWidth(m.features, features); err != nil {
		return 0, err
	}
	// 0 estimators means all trees
	return m.ensemble.PredictSingle(features, 0), nil
}
