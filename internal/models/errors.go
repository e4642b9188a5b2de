package models

import (
	"fmt"
	"sort"
	"strings"
)

// ModelLoadError reports a missing or corrupt model artifact.
// It is fatal to the process: there is no retry and no fallback model.
type ModelLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ModelLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load model %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load model %s: %s", e.Path, e.Reason)
}

// Unwrap exposes the underlying cause, e.g. fs.ErrNotExist
func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// IsTransient returns false as a broken artifact does not heal on retry
func (e *ModelLoadError) IsTransient() bool {
	return false
}

// SchemaMismatchError reports a feature set that does not match the model.
// It aborts a single prediction, not the process.
type SchemaMismatchError struct {
	Expected []string
	Got      []string
	Message  string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: %s (expected [%s], got [%s])",
		e.Message, strings.Join(e.Expected, ","), strings.Join(e.Got, ","))
}

// IsTransient returns false as schema errors are permanent
func (e *SchemaMismatchError) IsTransient() bool {
	return false
}

func sortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
