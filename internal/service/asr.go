// Package service holds thin stage façades: each resolves a backend from the
// registry, shapes the inference request and delegates.
package service

import (
	"bytes"
	"context"
	"io"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/model"
)

// ASR is a service abstraction for speech recognition.
type ASR struct {
	backends *backend.Registry
}

// NewASR creates a new ASR service.
func NewASR(backends *backend.Registry) *ASR {
	return &ASR{backends: backends}
}

// Transcribe recognizes audio with the given backend and model handle.
// It returns the transcript and any language the backend itself detected.
// handle may be nil for backends with no assigned model.
func (s *ASR) Transcribe(ctx context.Context, provider backend.Provider, handle *model.Handle, audio []byte, params map[string]any) (text, detectedLang string, err error) {
	b, ok := s.backends.Get(provider)
	if !ok {
		return "", "", backend.ErrNotFound
	}

	modelPath := ""
	if handle != nil {
		modelPath = handle.Path()
	}

	req := &backend.Request{
		ModelPath:  modelPath,
		Input:      bytes.NewReader(audio),
		Parameters: params,
	}

	resp, err := b.Infer(ctx, req)
	if err != nil {
		return "", "", err
	}

	out, err := io.ReadAll(resp.Output)
	if err != nil {
		return "", "", err
	}

	if resp.Metadata != nil {
		if v, ok := resp.Metadata.BackendSpecific["detected_language"].(string); ok {
			detectedLang = v
		}
	}

	return string(out), detectedLang, nil
}
