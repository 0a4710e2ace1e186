package backend

import (
	"errors"
	"fmt"
)

// Error definitions for the backend package.
var (
	ErrNotFound          = errors.New("backend not found in registry")
	ErrAlreadyRegistered = errors.New("backend is already registered in the registry")
)

// InferenceError reports a loaded model failing on a given input. It is
// fatal for the current utterance but not for the process.
type InferenceError struct {
	Provider Provider
	Stderr   string
	Err      error
}

func (e *InferenceError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: inference failed: %v\nstderr: %s", e.Provider, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: inference failed: %v", e.Provider, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
