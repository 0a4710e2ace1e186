package model

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a model id absent from the catalog.
var ErrNotFound = errors.New("model not found in catalog")

// LoadError reports a failed model load. Failed loads are never cached, so a
// later GetOrLoad for the same id retries from scratch.
type LoadError struct {
	ModelID string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("model %s: load failed: %v", e.ModelID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
