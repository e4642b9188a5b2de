package inference

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"aqi-predictor/internal/models"
)

// Artifact kinds
const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
)

// artifact is the on-disk JSON representation of a model
type artifact struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Format       string    `json:"format"`
	ModelFile    string    `json:"model_file"`
}

// LoadModel reads a model artifact from disk. Every failure is reported as
// *models.ModelLoadError; callers treat it as fatal.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ModelLoadError{Path: path, Reason: "read artifact", Err: err}
	}

	return DecodeModel(path, data)
}

// DecodeModel decodes artifact bytes. path is used in error reports and to
// resolve a tree ensemble's model_file.
func DecodeModel(path string, data []byte) (Model, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &models.ModelLoadError{Path: path, Reason: "artifact is empty"}
	}

	var a artifact
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, &models.ModelLoadError{Path: path, Reason: "decode artifact", Err: err}
	}

	var (
		m   Model
		err error
	)
	switch a.Kind {
	case KindLinear:
		m, err = NewLinearModel(a.FeatureNames, a.Intercept, a.Coefficients)
	case KindTreeEnsemble:
		if a.ModelFile == "" {
			return nil, &models.ModelLoadError{Path: path, Reason: "tree_ensemble artifact has no model_file"}
		}
		modelFile := a.ModelFile
		if !filepath.IsAbs(modelFile) {
			modelFile = filepath.Join(filepath.Dir(path), modelFile)
		}
		m, err = LoadTreeEnsemble(a.Format, modelFile, a.FeatureNames)
	default:
		return nil, &models.ModelLoadError{Path: path, Reason: "unknown model kind " + strconv.Quote(a.Kind)}
	}
	if err != nil {
		return nil, &models.ModelLoadError{Path: path, Reason: "invalid " + a.Kind + " parameters", Err: err}
	}

	return m, nil
}
